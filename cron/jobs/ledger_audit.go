package jobs

import (
	"log"

	"gorm.io/gorm"

	toolEntity "toolledger.GO/model/entity/tool"
	movementRepo "toolledger.GO/model/repository/movement"
)

// OpenDB is injected at startup (see config/cron.go); jobs run outside a
// request and open their own connection.
var OpenDB func() (*gorm.DB, error)

// LedgerAuditJob recomputes every tool's quantity from the movement log and
// logs any drift. Because each quantity change is paired with one movement in
// the same transaction, SUM(delta) must equal the stored quantity; a mismatch
// means the pairing invariant was violated outside the service path.
func LedgerAuditJob(args ...string) {
	if OpenDB == nil {
		log.Println("ledger audit: no DB opener configured, skipping")
		return
	}
	db, err := OpenDB()
	if err != nil {
		log.Printf("ledger audit: db open failed: %v", err)
		return
	}

	repo, err := movementRepo.NewMovementRepository(db)
	if err != nil {
		log.Printf("ledger audit: %v", err)
		return
	}
	sums, err := repo.SumDeltaByTool()
	if err != nil {
		log.Printf("ledger audit: aggregate failed: %v", err)
		return
	}
	totals := make(map[uint]int64, len(sums))
	for _, s := range sums {
		totals[s.ToolID] = s.Total
	}

	var tools []toolEntity.Tool
	if err := db.Find(&tools).Error; err != nil {
		log.Printf("ledger audit: load tools failed: %v", err)
		return
	}

	drift := 0
	for _, t := range tools {
		if total := totals[t.ID]; total != t.Quantity {
			drift++
			log.Printf("ledger audit: tool %d (%s) quantity=%d but SUM(delta)=%d", t.ID, t.Name, t.Quantity, total)
		}
	}
	if drift == 0 {
		log.Printf("ledger audit: %d tools consistent with movement log", len(tools))
	} else {
		log.Printf("ledger audit: %d of %d tools drifted", drift, len(tools))
	}
}
