// Package worker renders prompts for jobs read from a Redis stream.
//
// The worker joins a consumer group on the work stream, renders each job
// through the dashboard pipeline and publishes the prompt to a result stream.
// Jobs that fail are reported on "<result stream>.errors". Every message is
// acknowledged, whether it succeeded or not.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
//
//	w := worker.NewWorker(cfg, redisClient, pipeline, logger)
//	if err := w.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// A job message carries a single "data" field:
//
//	{"job_id": "42", "csv": "Line,Alerts\nL1,Overheat\n", "template": "Root Cause Analysis"}
package worker
