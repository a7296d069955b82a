package response

type Status string

const (
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"
	StatusError   Status = "error"
)

type Envelope struct {
	Status  Status      `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

func Success(data interface{}) Envelope {
	return Envelope{
		Status: StatusSuccess,
		Data:   data,
	}
}

func Fail(message string) Envelope {
	return Envelope{
		Status:  StatusFail,
		Data:    nil,
		Message: message,
	}
}

// FailWithData carries structured detail alongside a fail message,
// e.g. the validation message list.
func FailWithData(message string, data interface{}) Envelope {
	return Envelope{
		Status:  StatusFail,
		Data:    data,
		Message: message,
	}
}

func Error(message string) Envelope {
	return Envelope{
		Status:  StatusError,
		Data:    nil,
		Message: message,
	}
}
