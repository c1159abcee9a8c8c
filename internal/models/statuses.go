package models

// RoleTier - уровень доступа (enum role_type)
type RoleTier string

const (
	RoleTierAdmin    RoleTier = "ADMIN"
	RoleTierUser     RoleTier = "USER"
	RoleTierProvider RoleTier = "PROVIDER"
)

// Имена строк в таблице roles. Тир USER хранится под именем "client".
const (
	RoleNameAdmin    = "admin"
	RoleNameClient   = "client"
	RoleNameProvider = "provider"
)

// TierForRole maps a stored role name to its permission tier.
func TierForRole(name string) RoleTier {
	switch name {
	case RoleNameAdmin:
		return RoleTierAdmin
	case RoleNameProvider:
		return RoleTierProvider
	default:
		return RoleTierUser
	}
}

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

type NotificationType string

const (
	NotificationTypeInfo     NotificationType = "INFO"
	NotificationTypeAlert    NotificationType = "ALERT"
	NotificationTypeReminder NotificationType = "REMINDER"
)
