package service

import (
	"fmt"
	"html"
	"strings"

	"billsmith/config"
	"billsmith/models"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendDueReminder 把即将到期的账单列表发到 email.to
func (s *EmailService) SendDueReminder(bills []models.Bill, days int) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 BILLSMITH_EMAIL_ENABLED=true")
	}
	if s.cfg.To == "" {
		return fmt.Errorf("未配置收件人 email.to")
	}

	subject := fmt.Sprintf("[BillSmith] %d bills due in the next %d days", len(bills), days)
	return s.sendEmail(s.cfg.To, subject, s.generateDueReminderBody(bills, days))
}

// generateDueReminderBody 生成到期提醒邮件内容
func (s *EmailService) generateDueReminderBody(bills []models.Bill, days int) string {
	var rows strings.Builder
	total := decimal.Zero
	for _, b := range bills {
		fmt.Fprintf(&rows, `
            <tr>
                <td>%s</td>
                <td>%s</td>
                <td>%s</td>
                <td class="amount">%s</td>
            </tr>`,
			dateOrEmpty(b.DueDate),
			html.EscapeString(b.Category.Name),
			html.EscapeString(b.DocumentTitle()),
			b.AmountDue.StringFixed(2),
		)
		total = total.Add(b.AmountDue)
	}

	if len(bills) == 0 {
		rows.WriteString(`
            <tr><td colspan="4" class="empty">No bills due.</td></tr>`)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 640px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: #2222FF; color: white; padding: 24px; text-align: center; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { padding: 30px; }
        table { width: 100%%; border-collapse: collapse; }
        th, td { padding: 8px; border-bottom: 1px solid #eee; text-align: left; font-size: 14px; }
        .amount { text-align: right; }
        .empty { text-align: center; color: #888; }
        .total { font-weight: bold; }
        .footer { background: #f8f9fa; padding: 16px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>BillSmith</h1>
        </div>
        <div class="content">
            <p>Bills due in the next <strong>%d</strong> days:</p>
            <table>
            <tr><th>Due</th><th>Category</th><th>Document</th><th class="amount">Amount</th></tr>%s
            <tr class="total"><td colspan="3">Total</td><td class="amount">%s</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>This message was sent automatically.</p>
        </div>
    </div>
</body>
</html>
`, days, rows.String(), total.StringFixed(2))
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
