package http

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

const internalErrorMessage = "Internal server error"

// Envelope — единый формат ответа API: cod_retorno=0 для успеха,
// 1 для бизнес-ошибки или внутренней ошибки.
type Envelope struct {
	CodRetorno int         `json:"cod_retorno"`
	Mensagem   string      `json:"mensagem,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeEnvelope(w, Envelope{CodRetorno: 0, Data: data})
}

func writeError(w http.ResponseWriter, mensagem string) {
	writeEnvelope(w, Envelope{CodRetorno: 1, Mensagem: mensagem})
}

// writeServiceError переводит ошибку сервиса в envelope. Бизнес-ошибки и
// ошибки валидации уходят клиенту дословно; всё остальное скрывается за
// общим сообщением и логируется на сервере.
func writeServiceError(w http.ResponseWriter, logger *log.Entry, err error) {
	if domain.IsValidationError(err) || domain.IsBusinessError(err) || domain.IsNotFound(err) {
		writeError(w, err.Error())
		return
	}

	logger.WithError(err).Error("request failed with unexpected error")
	writeError(w, internalErrorMessage)
}

// Ответ всегда HTTP 200: исход операции кодируется полем cod_retorno.
func writeEnvelope(w http.ResponseWriter, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(envelope)
}
