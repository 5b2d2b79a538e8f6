package http

import (
	"ticketflow-backend/internal/adapter/middleware"
	"ticketflow-backend/internal/domain/subject"
	"ticketflow-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// Handlers bundles everything RegisterRoutes needs.
type Handlers struct {
	Health   *Handler
	Auth     *AuthHandler
	User     *UserHandler
	Workflow *WorkflowHandler
	Record   *RecordHandler
	Approval *ApprovalHandler
}

// RegisterRoutes wires the API surface. Everything under /api except login
// requires a bearer token; workflow and user mutation is admin-only.
func RegisterRoutes(e *echo.Echo, h Handlers, verifier middleware.TokenVerifier, extra ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("", append([]echo.MiddlewareFunc{middleware.RequireAuth(verifier)}, extra...)...)
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	adminOnly := middleware.RequireRole(user.RoleAdmin)

	// users
	authed.POST("/users", h.User.Create, adminOnly)
	authed.GET("/users", h.User.List)
	authed.GET("/users/:id", h.User.Get)
	authed.PUT("/users/:id", h.User.Update, adminOnly)
	authed.DELETE("/users/:id", h.User.Delete, adminOnly)

	// workflow definitions
	authed.POST("/workflows", h.Workflow.Create, adminOnly)
	authed.GET("/workflows", h.Workflow.List)
	authed.GET("/workflows/:id", h.Workflow.Get)
	authed.PUT("/workflows/:id", h.Workflow.Update, adminOnly)
	authed.DELETE("/workflows/:id", h.Workflow.Delete, adminOnly)
	authed.POST("/workflows/:id/nodes", h.Workflow.AddNode, adminOnly)
	authed.GET("/workflows/:id/nodes", h.Workflow.Nodes)
	authed.PUT("/workflows/:id/nodes/reorder", h.Workflow.ReorderNodes, adminOnly)
	authed.PUT("/workflows/:id/nodes/:nodeId", h.Workflow.UpdateNode, adminOnly)
	authed.DELETE("/workflows/:id/nodes/:nodeId", h.Workflow.DeleteNode, adminOnly)
	authed.GET("/nodes/:nodeId/users", h.Workflow.NodeUsers)
	authed.POST("/nodes/:nodeId/users", h.Workflow.AddNodeUsers, adminOnly)
	authed.PUT("/nodes/:nodeId/users", h.Workflow.SetNodeUsers, adminOnly)
	authed.DELETE("/nodes/:nodeId/users/:userId", h.Workflow.RemoveNodeUser, adminOnly)

	// tickets
	authed.POST("/tickets", h.Record.CreateTicket)
	authed.GET("/tickets", h.Record.ListTickets)
	authed.GET("/tickets/pending-approval", h.Approval.PendingByKind(subject.KindTicket))
	authed.GET("/tickets/:id", h.Record.GetTicket)
	authed.POST("/tickets/:id/workflow", h.Approval.Initialize(subject.KindTicket))
	authed.POST("/tickets/:id/approve", h.Approval.Vote(subject.KindTicket))
	authed.GET("/tickets/:id/approvals", h.Approval.Approvals(subject.KindTicket))

	// reprint requests
	authed.POST("/reprint-requests", h.Record.CreateReprintRequest)
	authed.GET("/reprint-requests", h.Record.ListReprintRequests)
	authed.GET("/reprint-requests/pending-approval", h.Approval.PendingByKind(subject.KindReprintRequest))
	authed.GET("/reprint-requests/:id", h.Record.GetReprintRequest)
	authed.POST("/reprint-requests/:id/workflow", h.Approval.Initialize(subject.KindReprintRequest))
	authed.POST("/reprint-requests/:id/approve", h.Approval.Vote(subject.KindReprintRequest))
	authed.GET("/reprint-requests/:id/approvals", h.Approval.Approvals(subject.KindReprintRequest))

	// cross-kind vote queue
	authed.GET("/approvals/pending", h.Approval.Pending)
}
