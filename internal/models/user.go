// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи и хэш пароля.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string // Уникальный идентификатор пользователя
	Email        string // Электронная почта
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя
	Role         string // Роль пользователя, admin или user
}

// DefaultRole назначается при регистрации.
const DefaultRole = "user"
