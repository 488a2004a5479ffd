package setting

import "time"

// SettingResponse exposes one setting with its decoded value.
type SettingResponse struct {
	Key         string    `json:"key"`
	Value       any       `json:"value"`
	ValueType   string    `json:"value_type"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateSettingRequest upserts one setting by key.
type UpdateSettingRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       any    `json:"value" binding:"required"`
	ValueType   string `json:"value_type" binding:"required,oneof=string number boolean json"`
	Description string `json:"description"`
}
