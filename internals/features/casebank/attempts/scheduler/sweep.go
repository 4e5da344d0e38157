package scheduler

import (
	"context"
	"log"
	"time"

	attemptSvc "praktikum_backend/internals/features/casebank/attempts/service"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	"praktikum_backend/internals/configs"
)

// StartAttemptSweepScheduler: tiap menit tandai attempt lewat deadline
// sebagai expired dan abandon sesi latihan yang idle.
func StartAttemptSweepScheduler(attempts *attemptSvc.AttemptService, sessions *attemptSvc.SessionService) {
	go func() {
		for {
			ctx := context.Background()
			if _, err := attempts.ExpireOldAttempts(ctx); err != nil {
				log.Printf("[SWEEP ERROR] Gagal expire attempt: %v", err)
			}
			if _, err := sessions.AbandonIdleSessions(ctx, attemptSvc.SessionIdleTTL); err != nil {
				log.Printf("[SWEEP ERROR] Gagal abandon sesi idle: %v", err)
			}
			time.Sleep(1 * time.Minute)
		}
	}()
}

// StartAuditRetentionScheduler: purge harian audit log lebih tua dari
// retention (default 365 hari, override via AUDIT_RETENTION_DAYS).
func StartAuditRetentionScheduler(recorder *auditSvc.Recorder) {
	go func() {
		for {
			retention := time.Duration(configs.AuditRetentionDays) * 24 * time.Hour
			cutoff := time.Now().Add(-retention)

			log.Println("[CLEANUP] Menjalankan purge audit_logs...")
			if rows, err := recorder.PurgeOlderThan(cutoff); err != nil {
				log.Printf("[CLEANUP ERROR] Gagal purge audit log: %v", err)
			} else if rows > 0 {
				log.Printf("[CLEANUP] %d audit log lama dihapus", rows)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
