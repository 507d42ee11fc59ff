package config

import (
	"toolledger.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"ledgeraudit": {Schedule: "30 2 * * *", Job: jobs.LedgerAuditJob},
	// Add more jobs here
}

func init() {
	// jobs open their own connection; wiring it here avoids an import cycle
	jobs.OpenDB = NewDB
}
