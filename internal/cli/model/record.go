package model

import "time"

// RecordType — категория записи.
type RecordType string

const (
	TypeBank    RecordType = "bank"
	TypeStore   RecordType = "store"
	TypeEwallet RecordType = "ewallet"
)

// MetadataType — тип закодированного payload.
type MetadataType string

const (
	MetadataQR      MetadataType = "qr"
	MetadataBarcode MetadataType = "barcode"
)

// Record - base QR record model.
// Timestamps хранятся строками RFC3339Nano (UTC); поле Updated — единственный
// сигнал для разрешения конфликтов при синхронизации.
type Record struct {
	ID            string
	QRIndex       int    // позиция отображения, плотная 0..N-1 в рамках пользователя
	UserID        string // "" — гостевой (неавторизованный) владелец
	Code          string // ссылка на запись каталога (банк/магазин/кошелёк)
	Metadata      string // текст QR или штрих-кода
	MetadataType  MetadataType
	AccountName   string
	AccountNumber string
	Type          RecordType
	Created       string
	Updated       string
	IsDeleted     bool // tombstone: локально запись сохраняется до подтверждения удаления сервером
	IsSynced      bool // false — есть локальные изменения, не подтверждённые сервером
}

// TimeLayout — канонический формат метки времени. Фиксированная ширина
// дробной части: лексикографический порядок строк совпадает с хронологическим,
// на это опирается SQL MAX(updated).
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime приводит время к каноническому строковому виду (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime разбирает строку времени; на мусорном значении возвращает нулевое
// время (деградация вместо ошибки — битое значение проигрывает любому живому).
func ParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UpdatedAfter сообщает, строго ли новее метка a относительно b.
func UpdatedAfter(a, b string) bool {
	return ParseTime(a).After(ParseTime(b))
}

// ValidType проверяет категорию записи.
func ValidType(t RecordType) bool {
	switch t {
	case TypeBank, TypeStore, TypeEwallet:
		return true
	}
	return false
}

// ValidMetadataType проверяет тип payload.
func ValidMetadataType(t MetadataType) bool {
	switch t {
	case MetadataQR, MetadataBarcode:
		return true
	}
	return false
}
