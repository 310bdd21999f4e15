package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/repository"
)

const writeTimeout = 5 * time.Second

// LastSeenRecorder applies last-seen timestamp updates detached from the
// request lifecycle. Requests submit through Record and never wait on the
// write; any failure is logged and dropped.
type LastSeenRecorder struct {
	users  repository.UserRepository
	logger *zap.Logger
	queue  chan string
	done   chan struct{}
}

// NewLastSeenRecorder starts the recorder's drain goroutine.
func NewLastSeenRecorder(users repository.UserRepository, logger *zap.Logger, buffer int) *LastSeenRecorder {
	if buffer <= 0 {
		buffer = 256
	}
	r := &LastSeenRecorder{
		users:  users,
		logger: logger,
		queue:  make(chan string, buffer),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Record submits a last-seen update. Non-blocking: if the buffer is full the
// update is dropped and logged, never the request's problem.
func (r *LastSeenRecorder) Record(userID string) {
	select {
	case r.queue <- userID:
	default:
		r.logger.Warn("last-seen queue full, dropping update", zap.String("user_id", userID))
	}
}

// Close drains outstanding updates and stops the recorder.
func (r *LastSeenRecorder) Close() {
	close(r.queue)
	<-r.done
}

func (r *LastSeenRecorder) run() {
	defer close(r.done)
	for userID := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := r.users.TouchLastSeen(ctx, userID); err != nil {
			r.logger.Error("last-seen update failed", zap.String("user_id", userID), zap.Error(err))
		}
		cancel()
	}
}
