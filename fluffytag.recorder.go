package fluffytag

import (
	"context"
	"time"
)

// RecorderConfig configures which tags a Recorder captures and how captured
// artifacts are labeled.
type RecorderConfig struct {
	// Tags are the tag names to capture. Required.
	Tags []string

	// SessionID groups this stream's artifacts. Generated when empty.
	SessionID string

	// Source labels where the stream came from (e.g., a model name).
	Source string

	// AllowsNestedOfSameType is forwarded to each tag registration.
	AllowsNestedOfSameType bool
}

// Recorder persists completed tags from a stream as artifacts. Binding a
// recorder registers a capture handler for each configured tag on the
// processor; storage failures surface through the processor's error
// boundary like any other handler failure.
type Recorder struct {
	storage   ArtifactStorage
	sessionID string
	source    string
	captured  int
}

// Recorder error message constants
const (
	ErrMsgRecorderNilStorage = "recorder storage cannot be nil"
	ErrMsgRecorderNoTags     = "recorder requires at least one tag"
)

// NewRecorder creates a recorder writing to storage and registers its
// capture handlers on the processor.
func NewRecorder(p *Processor, storage ArtifactStorage, config RecorderConfig) (*Recorder, error) {
	if storage == nil {
		return nil, &StorageError{Message: ErrMsgRecorderNilStorage}
	}
	if len(config.Tags) == 0 {
		return nil, &StorageError{Message: ErrMsgRecorderNoTags}
	}

	sessionID := config.SessionID
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	r := &Recorder{
		storage:   storage,
		sessionID: sessionID,
		source:    config.Source,
	}

	for _, tag := range config.Tags {
		tagName := tag
		err := p.RegisterHandler(tagName, func(attrs Attributes, content string) error {
			return r.capture(tagName, attrs, content)
		}, WithAllowsNestedOfSameType(config.AllowsNestedOfSameType))
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// capture saves one completed tag as an artifact.
func (r *Recorder) capture(tagName string, attrs Attributes, content string) error {
	artifact := &Artifact{
		SessionID:  r.sessionID,
		Tag:        tagName,
		Attributes: attrs,
		Content:    content,
		Source:     r.source,
		CreatedAt:  time.Now(),
	}
	if err := r.storage.Save(context.Background(), artifact); err != nil {
		return err
	}
	r.captured++
	return nil
}

// SessionID returns the session identifier artifacts are captured under.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Captured returns the number of artifacts captured so far.
func (r *Recorder) Captured() int {
	return r.captured
}

// Artifacts lists this session's captured artifacts, newest first.
func (r *Recorder) Artifacts(ctx context.Context) ([]*Artifact, error) {
	return r.storage.List(ctx, &ArtifactQuery{SessionID: r.sessionID})
}
