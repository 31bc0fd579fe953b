package model

import "time"

// Record — серверная модель записи коллекции qrcodes.
//
// Метки Created/Updated авторитетны на клиенте: сервер хранит их как есть
// и не подменяет своим временем, иначе last-write-wins на клиенте сломается.
type Record struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID string `gorm:"not null;index;type:uuid"`

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	QRIndex       int    `gorm:"not null;default:0"`
	Code          string `gorm:"not null"`
	Metadata      string `gorm:"not null"`
	MetadataType  string `gorm:"not null;default:qr"`
	AccountName   string
	AccountNumber string
	Type          string `gorm:"not null"`

	Created time.Time `gorm:"not null"`
	Updated time.Time `gorm:"not null;index"`
}

// TableName фиксирует имя таблицы под имя коллекции в API.
func (Record) TableName() string {
	return "qrcodes"
}
