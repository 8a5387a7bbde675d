package order

import (
	"context"
	"errors"

	"go-digistore-api/internal/midtrans"
	"go-digistore-api/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ExpireStale moves PENDING orders past their expiry to EXPIRED. The
// processor is asked first; a capture it reports is held for review
// instead of paying the order.
func (s *service) ExpireStale(ctx context.Context, limit int32) (int, error) {
	numbers, err := s.repo.ListExpiredPending(ctx, s.now(), limit)
	if err != nil {
		return 0, ErrOrderFailed.Wrap(err)
	}

	expired := 0
	for _, number := range numbers {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		log := s.logger.With(zap.String("order_number", number))

		st, err := s.midtransSvc.GetStatus(ctx, number)
		switch {
		case err == nil:
			if target, ok := MapGatewayStatus(st.TransactionStatus, st.FraudStatus); ok && target != StatusPending {
				res, err := s.applyGatewayStatus(ctx, number, st)
				if err != nil {
					log.Error("failed to apply processor status during sweep", zap.Error(err))
				} else {
					log.Info("sweep applied processor status", zap.String("to", res.To), zap.String("reason", res.Reason))
				}
				continue
			}
		case errors.Is(err, midtrans.ErrTransactionNotFound):
			// never reached the processor
		default:
			log.Warn("processor status unavailable, retrying next sweep", zap.Error(err))
			continue
		}

		res, err := s.applyTransition(ctx, transitionInput{OrderNumber: number, Target: StatusExpired}, false)
		if err != nil {
			log.Error("failed to expire order", zap.Error(err))
			continue
		}
		if res.Applied {
			expired++
		}
	}

	if expired > 0 {
		metrics.SweepExpired.Add(float64(expired))
		s.logger.Info("expired stale orders", zap.Int("count", expired))
	}
	return expired, nil
}
