package mail

import (
	"context"

	"github.com/tazhibayda/piazza-service/internal/helper"
	"github.com/tazhibayda/piazza-service/internal/log"
	"go.uber.org/zap"
)

// Sender delivers by logging. Recipients appear only as fingerprints.
type Sender struct {
	Log *zap.Logger
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	l := s.Log
	if l == nil {
		l = zap.L()
	}
	log.WithDD(ctx, l).Info("[MAIL]",
		zap.String("to", helper.Hash8(to)),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
