package usecase

import "io"

// ObjectStorage is the narrow contract the orchestrator needs from the
// binary object store. Satisfied by *s3.Client.
type ObjectStorage interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
	KeyFromURL(url string) string
}

// EmailSender is satisfied by *mailer.Client. All sends are best-effort.
type EmailSender interface {
	SendWelcome(to string, username string) error
	SendPictureUpdated(to string, username string) error
}

// EmailQueue is satisfied by *queue.Client. When a queue is wired, email
// tasks are published there instead of being sent inline.
type EmailQueue interface {
	PublishEmailTask(task map[string]interface{}) error
}
