package config

// MailConfig SMTP 邮件配置。
// 用于职位投递后给招聘方的通知邮件；Host 为空时视为未启用。
type MailConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"` // 发件人地址
}

// DefaultMailConfig 返回本地开发的默认配置。
func DefaultMailConfig() MailConfig {
	return MailConfig{
		Host:     envString("MAIL_HOST", ""),
		Port:     envInt("MAIL_PORT", 587),
		Username: envString("MAIL_USERNAME", ""),
		Password: envString("MAIL_PASSWORD", ""),
		From:     envString("MAIL_FROM", "no-reply@aibeitong.app"),
	}
}

// Enabled 判断邮件功能是否可用。
func (c MailConfig) Enabled() bool {
	return c.Host != ""
}
