package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorResponse cuerpo de error HTTP de transporte (body inválido, token, etc.).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope respuesta uniforme de los casos de uso. Es éxito ({data, info}) o error
// ({code, message}), nunca ambos: Code != 0 marca el error.
type Envelope struct {
	Data    map[string]any
	Info    map[string]string
	Code    int
	Message string
}

type envelopeJSON struct {
	Data    map[string]any    `json:"data,omitempty"`
	Info    map[string]string `json:"info,omitempty"`
	Code    int               `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
}

// NewSuccessEnvelope crea un envelope de éxito vacío.
func NewSuccessEnvelope() *Envelope {
	return &Envelope{Data: map[string]any{}, Info: map[string]string{}}
}

// NewErrorEnvelope crea un envelope de error.
func NewErrorEnvelope(code int, message string) *Envelope {
	return &Envelope{Code: code, Message: message}
}

// IsError indica si el envelope representa un error.
func (e *Envelope) IsError() bool {
	return e.Code != 0
}

// Set agrega un valor a data junto con su leyenda en info.
func (e *Envelope) Set(key string, value any, caption string) {
	e.Data[key] = value
	e.Info[key] = caption
}

// MarshalJSON serializa solo la forma que corresponde. Un éxito siempre incluye data e info,
// aunque estén vacíos.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Code != 0 {
		return json.Marshal(struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}{e.Code, e.Message})
	}
	data, info := e.Data, e.Info
	if data == nil {
		data = map[string]any{}
	}
	if info == nil {
		info = map[string]string{}
	}
	return json.Marshal(struct {
		Data map[string]any    `json:"data"`
		Info map[string]string `json:"info"`
	}{data, info})
}

// UnmarshalJSON reconstruye el envelope (usado por el caché de dropdowns). Los números de data
// quedan como json.Number para que ids mayores a 2^53 se vuelvan a serializar sin pérdida.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var raw envelopeJSON
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw.Code != 0 {
		*e = Envelope{Code: raw.Code, Message: raw.Message}
		return nil
	}
	*e = Envelope{Data: raw.Data, Info: raw.Info}
	if e.Data == nil {
		e.Data = map[string]any{}
	}
	if e.Info == nil {
		e.Info = map[string]string{}
	}
	return nil
}
