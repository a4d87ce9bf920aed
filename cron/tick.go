package cron

import (
	"context"

	"remindly/services/reminder"

	cronv3 "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartReminderTicker runs the reminder engine once per minute. The engine
// itself skips a tick if the previous cycle is still running, so an
// occasional slow cycle cannot stack.
func StartReminderTicker(engine *reminder.Engine, log *zap.Logger) *cronv3.Cron {
	c := cronv3.New()
	_, err := c.AddFunc("* * * * *", func() {
		engine.RunCycle(context.Background())
	})
	if err != nil {
		log.Fatal("failed to register reminder tick", zap.Error(err))
	}
	c.Start()
	log.Info("reminder ticker started")
	return c
}
