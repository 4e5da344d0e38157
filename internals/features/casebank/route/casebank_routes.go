// file: internals/features/casebank/route/casebank_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"praktikum_backend/internals/constants"
	attemptController "praktikum_backend/internals/features/casebank/attempts/controller"
	attemptSvc "praktikum_backend/internals/features/casebank/attempts/service"
	auditController "praktikum_backend/internals/features/casebank/audit/controller"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseController "praktikum_backend/internals/features/casebank/cases/controller"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	categoryController "praktikum_backend/internals/features/casebank/categories/controller"
	"praktikum_backend/internals/features/casebank/events"
	notifController "praktikum_backend/internals/features/casebank/notifications/controller"
	reviewController "praktikum_backend/internals/features/casebank/reviews/controller"
	statsController "praktikum_backend/internals/features/casebank/stats/controller"
	statsSvc "praktikum_backend/internals/features/casebank/stats/service"
	helperCache "praktikum_backend/internals/helpers/cache"
	"praktikum_backend/internals/helpers/ratelimit"
	rateLimiter "praktikum_backend/internals/middlewares"
	authMiddleware "praktikum_backend/internals/middlewares/auth"
)

// Deps: dependensi bersama seluruh fitur casebank — satu cache, satu
// limiter, satu sink untuk seluruh proses.
type Deps struct {
	DB      *gorm.DB
	Cache   *helperCache.Cache
	Limiter *ratelimit.Limiter
	Sink    events.Sink
}

// Services merakit service graph casebank dari Deps. Dipakai routes dan
// scheduler di main.
func (d Deps) Services() (*caseSvc.WorkflowService, *caseSvc.BulkService, *caseSvc.CaseCopyService, *attemptSvc.AttemptService, *attemptSvc.SessionService) {
	audit := auditSvc.NewRecorder(d.DB)
	stats := statsSvc.NewStatsService(d.DB)
	copySvc := caseSvc.NewCaseCopyService(d.DB, audit)
	workflow := caseSvc.NewWorkflowService(d.DB, audit, d.Cache, d.Sink)
	bulk := caseSvc.NewBulkService(d.DB, audit, d.Cache, d.Sink, copySvc)
	attempts := attemptSvc.NewAttemptService(d.DB, audit, stats, d.Sink)
	sessions := attemptSvc.NewSessionService(d.DB)
	return workflow, bulk, copySvc, attempts, sessions
}

// CasebankAdminRoutes: authoring + workflow + bulk — instructor/admin.
func CasebankAdminRoutes(r fiber.Router, d Deps) {
	audit := auditSvc.NewRecorder(d.DB)
	workflow, bulk, copySvc, _, _ := d.Services()

	caseCtl := caseController.NewCaseController(d.DB, audit, d.Cache, copySvc)
	questionCtl := caseController.NewQuestionController(d.DB, audit, d.Cache)
	answerCtl := caseController.NewAnswerController(d.DB, d.Cache)
	workflowCtl := caseController.NewWorkflowController(workflow)
	bulkCtl := caseController.NewBulkController(bulk)
	categoryCtl := categoryController.NewCategoryController(d.DB, d.Cache)
	reviewCtl := reviewController.NewReviewController(d.DB)
	auditCtl := auditController.NewAuditController(d.DB)
	statsCtl := statsController.NewStatsController(statsSvc.NewStatsService(d.DB))

	instructor := authMiddleware.OnlyRoles(
		constants.RoleErrorInstructor("bank soal praktik"), constants.InstructorAndAbove...)
	read := rateLimiter.ActorRateLimiter(d.Limiter, "casebank", ratelimit.KindRead)
	write := rateLimiter.ActorRateLimiter(d.Limiter, "casebank", ratelimit.KindWrite)

	cases := r.Group("/cases", instructor)
	cases.Get("/", read, caseCtl.List)
	cases.Get("/:id", read, caseCtl.Detail)
	cases.Get("/:id/stats", read, statsCtl.GetByCase)
	cases.Get("/:id/reviews", read, reviewCtl.ListByCase)
	cases.Post("/", write, caseCtl.Create)
	cases.Patch("/:id", write, caseCtl.Patch)
	cases.Delete("/:id", write, caseCtl.Delete)
	cases.Post("/:id/duplicate", write, caseCtl.Duplicate)

	// workflow
	cases.Post("/:id/submit-review", write, workflowCtl.SubmitForReview)
	cases.Post("/:id/assign-reviewer", write, workflowCtl.AssignReviewer)
	cases.Post("/:id/publish", write, workflowCtl.Publish)
	cases.Post("/:id/archive", write, workflowCtl.Archive)
	cases.Post("/:id/back-to-draft", write, workflowCtl.BackToDraft)

	// bulk — satu budget write per batch, bukan per item
	bulkGroup := r.Group("/cases-bulk", instructor, write)
	bulkGroup.Post("/publish", bulkCtl.Publish)
	bulkGroup.Post("/archive", bulkCtl.Archive)
	bulkGroup.Post("/delete", bulkCtl.Delete)
	bulkGroup.Post("/move", bulkCtl.Move)
	bulkGroup.Post("/assign-tags", bulkCtl.AssignTags)
	bulkGroup.Post("/duplicate", bulkCtl.Duplicate)

	// soal & jawaban
	questions := r.Group("/questions", instructor, write)
	questions.Patch("/:id", questionCtl.Patch)
	questions.Delete("/:id", questionCtl.Delete)
	questions.Post("/:id/answers", answerCtl.Create)
	cases.Post("/:id/questions", write, questionCtl.Create)

	answers := r.Group("/answers", instructor, write)
	answers.Patch("/:id", answerCtl.Patch)
	answers.Delete("/:id", answerCtl.Delete)

	// kategori
	categories := r.Group("/categories", instructor)
	categories.Get("/", read, categoryCtl.List)
	categories.Post("/", write, categoryCtl.Create)
	categories.Patch("/:id", write, categoryCtl.Patch)
	categories.Delete("/:id", write, categoryCtl.Delete)

	// audit log — admin saja
	r.Get("/audit-logs",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("audit log"), constants.AdminOnly...),
		read, auditCtl.List)
}

// CasebankReviewerRoutes: antrian & keputusan review — reviewer/admin.
func CasebankReviewerRoutes(r fiber.Router, d Deps) {
	workflow, _, _, _, _ := d.Services()
	workflowCtl := caseController.NewWorkflowController(workflow)
	reviewCtl := reviewController.NewReviewController(d.DB)

	reviewer := authMiddleware.OnlyRoles(
		constants.RoleErrorReviewer("review soal praktik"), constants.ReviewerAndAbove...)
	write := rateLimiter.ActorRateLimiter(d.Limiter, "review", ratelimit.KindWrite)
	read := rateLimiter.ActorRateLimiter(d.Limiter, "review", ratelimit.KindRead)

	reviews := r.Group("/reviews", reviewer)
	reviews.Get("/mine", read, reviewCtl.ListMine)
	reviews.Post("/:id/decide", write, workflowCtl.SubmitReview)
}

// CasebankUserRoutes: attempt, sesi latihan, notifikasi — semua role login.
func CasebankUserRoutes(r fiber.Router, d Deps) {
	_, _, _, attempts, sessions := d.Services()

	attemptCtl := attemptController.NewAttemptController(attempts, sessions)
	notifCtl := notifController.NewNotificationController(d.DB)

	read := rateLimiter.ActorRateLimiter(d.Limiter, "attempt", ratelimit.KindRead)
	write := rateLimiter.ActorRateLimiter(d.Limiter, "attempt", ratelimit.KindWrite)

	attemptGroup := r.Group("/attempts")
	attemptGroup.Post("/start", write, attemptCtl.Start)
	attemptGroup.Get("/:token", read, attemptCtl.Get)
	attemptGroup.Put("/:token/responses", write, attemptCtl.SaveResponses)
	attemptGroup.Post("/:token/finish", write, attemptCtl.Finish)

	sessionGroup := r.Group("/sessions")
	sessionGroup.Post("/start", write, attemptCtl.StartSession)
	sessionGroup.Get("/:token", read, attemptCtl.GetSession)
	sessionGroup.Put("/:token/responses", write, attemptCtl.SaveSession)
	sessionGroup.Post("/:token/complete", write, attemptCtl.CompleteSession)

	notifications := r.Group("/notifications")
	notifications.Get("/", read, notifCtl.ListMine)
	notifications.Post("/:id/read", write, notifCtl.MarkRead)
}
