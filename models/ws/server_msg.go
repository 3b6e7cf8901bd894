package wsmodels

type ServerMessage struct {
	ToUserID  string `json:"-"`
	Time      string `json:"time"`       // время события
	Code      string `json:"code"`       // код события
	RequestID string `json:"request_id"` // заявка, к которой относится событие
	Msg       string `json:"msg"`        // текст события
}
