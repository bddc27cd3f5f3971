package models

// Значения настроек уведомлений по умолчанию.
const (
	DefaultDaysBefore   = 3
	DefaultEmailEnabled = true
	DefaultPushEnabled  = false
)

// NotificationSettings настройки напоминаний пользователя. У пользователя не больше одной записи.
type NotificationSettings struct {
	ID           int    `json:"id"`
	UserUID      string `json:"user"`
	DaysBefore   int    `json:"days_before"`
	EmailEnabled bool   `json:"email_enabled"`
	PushEnabled  bool   `json:"push_enabled"`
}

// DummyNotificationSettings принимает настройки из JSON-запроса.
// Незаполненные поля получают значения по умолчанию.
type DummyNotificationSettings struct {
	DaysBefore   *int  `json:"days_before" validate:"omitempty,gte=0,lte=365"`
	EmailEnabled *bool `json:"email_enabled"`
	PushEnabled  *bool `json:"push_enabled"`
}

// ToSettings переводит запрос в модель, подставляя значения по умолчанию.
func (d DummyNotificationSettings) ToSettings(userUID string) NotificationSettings {
	s := NotificationSettings{
		UserUID:      userUID,
		DaysBefore:   DefaultDaysBefore,
		EmailEnabled: DefaultEmailEnabled,
		PushEnabled:  DefaultPushEnabled,
	}
	if d.DaysBefore != nil {
		s.DaysBefore = *d.DaysBefore
	}
	if d.EmailEnabled != nil {
		s.EmailEnabled = *d.EmailEnabled
	}
	if d.PushEnabled != nil {
		s.PushEnabled = *d.PushEnabled
	}
	return s
}
