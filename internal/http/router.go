package httpx

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/http/handlers"
	"github.com/HariStrange/drive-Vault/internal/http/middleware"
)

// Handlers groups every endpoint handler the router mounts
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Users    *handlers.UserHandlers
	Passport *handlers.PassportHandlers
	Quiz     *handlers.QuizHandlers
	Policy   *handlers.PolicyHandlers
}

// RouterOptions configures static upload serving
type RouterOptions struct {
	UploadRoot     string
	UploadMaxBytes int64
}

func BuildRouter(h Handlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware, opts RouterOptions) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if opts.UploadMaxBytes > 0 {
		r.MaxMultipartMemory = opts.UploadMaxBytes
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Recruiting Company API - Multi-tenant System"})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	if opts.UploadRoot != "" {
		r.Static("/uploads/passports", filepath.Join(opts.UploadRoot, domain.PassportUploadDir))
		r.Static("/uploads/questions", filepath.Join(opts.UploadRoot, domain.QuestionUploadDir))
	}

	auth := r.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/verify-email", h.Auth.VerifyEmail)
	auth.POST("/resend-verification", h.Auth.ResendVerification)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.POST("/auth/admin/reset-user-password", h.Auth.AdminResetPassword)

	v.GET("/users/me", h.Users.Me)
	v.GET("/users/admin/all-users", h.Users.List)
	v.GET("/users/admin/user/:userId", h.Users.Get)
	v.GET("/users/admin/stats", h.Users.Stats)

	v.POST("/passport", h.Passport.Create)
	v.GET("/passport/me", h.Passport.Me)
	v.PUT("/passport/me", h.Passport.Update)
	v.GET("/passport/all", h.Passport.All)
	v.DELETE("/passport/:id", h.Passport.Delete)

	v.POST("/question-sets", h.Quiz.CreateSet)
	v.GET("/question-sets", h.Quiz.ListSets)
	v.DELETE("/question-sets/:id", h.Quiz.DeleteSet)
	v.POST("/questions", h.Quiz.AddQuestion)
	v.GET("/questions/:setId", h.Quiz.ListQuestions)
	v.POST("/options", h.Quiz.AddLegacyOptions)

	v.POST("/quizz/set", h.Quiz.QuizzCreateSet)
	v.POST("/quizz/question", h.Quiz.QuizzCreateQuestion)
	v.POST("/quizz/question/:id/options", h.Quiz.QuizzAddOptions)
	v.POST("/quizz/assign-set", h.Quiz.AssignSet)
	v.GET("/quizz/set/:id/questions", h.Quiz.SetQuestions)
	v.POST("/quizz/set/:id/score", h.Quiz.ScoreSet)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", h.Policy.List)
	adm.POST("/policies", h.Policy.Add)
	adm.DELETE("/policies", h.Policy.Remove)

	return r
}
