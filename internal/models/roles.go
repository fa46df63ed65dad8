package models

// Роли пользователей
const (
	RoleFree    = "FREE"
	RolePremium = "PREMIUM"
)

// AllRoles возвращает все известные роли.
func AllRoles() []string {
	return []string{RoleFree, RolePremium}
}

// IsValidRole проверяет, что роль известна.
func IsValidRole(role string) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
