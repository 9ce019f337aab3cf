package domain

// Stream names
const (
	StreamAvailabilityChanged = "stream:availability:changed"
)

// AvailabilityChangedEvent публикуется бронированием/оператором при изменении слотов центра.
// Пустая Date означает "все даты центра".
type AvailabilityChangedEvent struct {
	EventID  string `json:"event_id"`
	CenterID string `json:"center_id"`
	Date     string `json:"date,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

// DateScope возвращает дату, слоты которой изменились; ok=false если затронуты все даты
// центра или дата не распознана
func (e AvailabilityChangedEvent) DateScope() (Date, bool) {
	if e.Date == "" {
		return Date{}, false
	}
	d, err := ParseDate(e.Date)
	if err != nil {
		return Date{}, false
	}
	return d, true
}
