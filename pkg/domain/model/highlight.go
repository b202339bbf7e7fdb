package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Position 保存高亮的定位数据。结构由前端定义（坐标矩形、文本区间等），
// 后端原样持久化、原样返回，不做任何解释。
type Position map[string]interface{}

func (p Position) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return json.Marshal(p)
}

func (p *Position) Scan(value interface{}) error {
	if value == nil {
		*p = Position{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

// StringList 以 JSON 数组形式持久化字符串切片
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for StringList scan")
	}
	return json.Unmarshal(b, s)
}

// Highlight 是附着在 (用户, 文档, 页码) 上的高亮/批注记录。
// 它引用的 Pdf 必须属于同一个 UserID，创建时由服务层校验。
type Highlight struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	PdfID      uint      `json:"pdf_id"`
	PageNumber int       `json:"pageNumber"`
	Text       string    `json:"text"`
	Position   Position  `json:"position"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`

	// 以下字段为 AI 增强功能预留，当前版本不写入
	AiSummary string     `json:"aiSummary"`
	Keywords  StringList `json:"keywords"`
	VoiceNote string     `json:"voiceNote"`
}
