package rent

import (
	"context"
	"log"
	"time"
)

// StartScheduler runs the generator once per billing period in a background
// goroutine, firing shortly after each IST month boundary. The period is
// resolved from the clock on every run, never cached across runs.
func StartScheduler(svc Service) {
	go func() {
		for {
			now := time.Now()
			next := PeriodEnd(now).Add(time.Minute)
			log.Printf("rent scheduler: next run at %s", next.Format(time.RFC3339))

			timer := time.NewTimer(time.Until(next))
			<-timer.C

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			result, err := svc.GenerateEntries(ctx, time.Now())
			cancel()
			if err != nil {
				log.Printf("rent scheduler: generation failed: %v", err)
				continue
			}
			log.Printf("rent scheduler: %s", result.Message)
		}
	}()
}
