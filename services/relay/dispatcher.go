// File: services/relay/dispatcher.go
package relay

import (
	"context"
	"sort"
	"sync"

	"huddle/models"
	"huddle/utils"

	"go.uber.org/zap"
)

// Target is one member addressed by a fan-out, with the relay key
// already unsealed. An empty key marks the member unreachable.
type Target struct {
	MemberID string
	Name     string
	RelayKey string
	Message  string
}

// RelayService fans messages out to members' relay agents.
type RelayService interface {
	// DispatchBatch delivers every target's message concurrently and
	// returns one outcome per target, in target order. It returns when
	// every send attempt has completed; one member's failure never
	// aborts the rest of the batch.
	DispatchBatch(ctx context.Context, targets []Target) []models.DispatchOutcome
}

// DefaultRelayService implements RelayService.
type DefaultRelayService struct {
	Transport Transport
}

func (s *DefaultRelayService) DispatchBatch(ctx context.Context, targets []Target) []models.DispatchOutcome {
	logger := utils.GetLogger()

	// outcomeData pairs an outcome with its target index so results
	// can be reported in target order after the concurrent drain.
	type outcomeData struct {
		idx     int
		outcome models.DispatchOutcome
	}

	resultsCh := make(chan outcomeData, len(targets))
	var wg sync.WaitGroup

	for i, t := range targets {
		if t.RelayKey == "" {
			resultsCh <- outcomeData{idx: i, outcome: models.DispatchOutcome{
				MemberID: t.MemberID,
				Name:     t.Name,
				Status:   models.DispatchSkipped,
				Reason:   "no relay key",
			}}
			continue
		}

		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()
			if err := s.Transport.Send(ctx, t.RelayKey, t.Message); err != nil {
				logger.Warn("relay delivery failed",
					zap.String("memberId", t.MemberID),
					zap.Error(err))
				resultsCh <- outcomeData{idx: i, outcome: models.DispatchOutcome{
					MemberID: t.MemberID,
					Name:     t.Name,
					Status:   models.DispatchFailed,
					Reason:   err.Error(),
				}}
				return
			}
			resultsCh <- outcomeData{idx: i, outcome: models.DispatchOutcome{
				MemberID: t.MemberID,
				Name:     t.Name,
				Status:   models.DispatchSent,
			}}
		}(i, t)
	}

	wg.Wait()
	close(resultsCh)

	var results []outcomeData
	for r := range resultsCh {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].idx < results[j].idx
	})

	outcomes := make([]models.DispatchOutcome, 0, len(results))
	for _, r := range results {
		outcomes = append(outcomes, r.outcome)
	}
	return outcomes
}

// SentCount tallies the outcomes that actually went out.
func SentCount(outcomes []models.DispatchOutcome) int {
	count := 0
	for _, o := range outcomes {
		if o.Status == models.DispatchSent {
			count++
		}
	}
	return count
}
