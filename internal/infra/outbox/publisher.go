package outbox

import (
	"context"
	"log/slog"
	"strings"

	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/usecase/shared"
)

// Publisher queues a batch notification in the outbox. It runs after the
// batch items committed, in its own unit of work.
type Publisher struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPublisher(uow shared.UnitOfWork, clk clock.Clock) *Publisher {
	return &Publisher{uow: uow, clock: clk}
}

func (p *Publisher) NotifyBatch(ctx context.Context, n shared.BatchNotification) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		recipients, err := p.recipients(ctx, tx, n)
		if err != nil {
			return err
		}
		if len(recipients) == 0 {
			slog.Debug("batch notification has no recipients", "action", n.Action, "assets", len(n.Assets))
			return nil
		}

		msg := BatchMessage{
			Action:     n.Action,
			ActorID:    n.ActorID,
			Recipients: recipients,
			Assets:     make([]AssetLine, 0, len(n.Assets)),
			OccurredAt: n.OccurredAt,
		}
		for _, a := range n.Assets {
			msg.Assets = append(msg.Assets, AssetLine{
				ID:            a.ID,
				Name:          a.Name,
				SerialNumber:  a.SerialNumber,
				AssetTag:      a.AssetTag,
				ValueCents:    a.ValueCents,
				TransactionID: a.TransactionID,
				Notes:         a.Notes,
				DueDate:       a.DueDate,
			})
		}

		payload, err := Encode(msg)
		if err != nil {
			return err
		}
		return tx.Notifications().CreateJob(ctx, tx.DB(), KindEmail, TopicTransactionBatch, payload, p.clock.Now())
	})
}

// recipients collects the active assignees and the client contact. Unknown
// users and clients are skipped rather than failing the notification.
func (p *Publisher) recipients(ctx context.Context, tx shared.Tx, n shared.BatchNotification) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(email string) {
		email = strings.TrimSpace(email)
		key := strings.ToLower(email)
		if email == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, email)
	}

	for _, id := range n.Assignees {
		u, err := tx.Users().FindByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				continue
			}
			return nil, err
		}
		if u.IsActive() {
			add(u.Email().Value())
		}
	}

	if n.ClientID != nil {
		c, err := tx.Clients().FindByID(ctx, tx.DB(), *n.ClientID)
		switch {
		case err == nil:
			if c.ContactEmail != nil {
				add(*c.ContactEmail)
			}
		case infra.IsKind(err, infra.KindNotFound):
			slog.Warn("batch notification client not found", "client_id", n.ClientID.String())
		default:
			return nil, err
		}
	}
	return out, nil
}
