package mailer

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/manu-acho/wamngo-sub000/internal/config"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Mailer 管理员通知邮件器
// 按约定这是一个桩：渲染出完整的 HTML 邮件后写入日志，从不真正发送。
// 渲染与记录通过 ants 协程池异步执行，不阻塞请求路径。
type Mailer struct {
	pool        *ants.Pool
	adminEmails []string
	fromAddress string
	appURL      string
}

var notificationTemplate = template.Must(template.New("admin_notification").Parse(`
<html>
  <body>
    <h2>{{.Subject}}</h2>
    <table>
      {{range $key, $value := .Fields}}
      <tr><td><strong>{{$key}}</strong></td><td>{{$value}}</td></tr>
      {{end}}
    </table>
    <p><a href="{{.AppURL}}/admin">Open the admin dashboard</a></p>
  </body>
</html>`))

// New 创建邮件器
func New(cfg config.MailerConfig, appURL string) (*Mailer, error) {
	size := cfg.PoolSize
	if size <= 0 {
		size = 4
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	return &Mailer{
		pool:        pool,
		adminEmails: cfg.AdminEmails,
		fromAddress: cfg.FromAddress,
		appURL:      appURL,
	}, nil
}

// Close 释放协程池
func (m *Mailer) Close() {
	if m.pool != nil {
		m.pool.Release()
	}
}

// NotifyContactSubmission 通知管理员有新的联系表单
func (m *Mailer) NotifyContactSubmission(name, email, subject string) {
	m.dispatch("New contact form submission", map[string]string{
		"Name":    name,
		"Email":   email,
		"Subject": subject,
	})
}

// NotifyProjectSubmission 通知管理员有新的项目提交待审核
func (m *Mailer) NotifyProjectSubmission(title, submitterWallet string) {
	m.dispatch("New project submission pending review", map[string]string{
		"Title":     title,
		"Submitter": submitterWallet,
	})
}

// NotifyPartnerApplication 通知管理员有新的合作申请待审核
func (m *Mailer) NotifyPartnerApplication(organizationName, contactEmail string) {
	m.dispatch("New partner application pending review", map[string]string{
		"Organization": organizationName,
		"Contact":      contactEmail,
	})
}

// dispatch 异步渲染并记录邮件；收件人未配置或池已满时降级为同步记录
func (m *Mailer) dispatch(subject string, fields map[string]string) {
	if len(m.adminEmails) == 0 {
		logger.Debug("No admin notification emails configured, skipping %q", subject)
		return
	}

	task := func() { m.renderAndLog(subject, fields) }
	if m.pool == nil {
		task()
		return
	}
	if err := m.pool.Submit(task); err != nil {
		logger.Warn("Mailer pool rejected task: %v", err)
		task()
	}
}

// renderAndLog 渲染HTML并写日志（发送桩）
func (m *Mailer) renderAndLog(subject string, fields map[string]string) {
	var body bytes.Buffer
	err := notificationTemplate.Execute(&body, map[string]interface{}{
		"Subject": subject,
		"Fields":  fields,
		"AppURL":  m.appURL,
	})
	if err != nil {
		logger.Error("Failed to render notification email: %v", err)
		return
	}

	logger.Info("Email notification (not sent) from=%s to=%s subject=%q body=%s",
		m.fromAddress, strings.Join(m.adminEmails, ","), subject, body.String())
}
