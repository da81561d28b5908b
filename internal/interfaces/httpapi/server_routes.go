package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/codes", handler.SendAuthCode)
	mux.HandleFunc("POST /v1/auth/codes/verify", handler.VerifyAuthCode)
	mux.HandleFunc("POST /v1/auth/password-reset", handler.SendPasswordReset)
	mux.HandleFunc("POST /v1/invitations/validate", handler.ValidateInvitation)

	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboardPage)
	mux.HandleFunc("GET /v1/results", handler.ListEventResults)
	mux.HandleFunc("GET /v1/events/{eventID}/result", handler.GetEventResult)
	mux.HandleFunc("GET /v1/scoring/settings", handler.GetScoringSettings)
	mux.HandleFunc("GET /v1/entities", handler.GetEntityRegister)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedAccountRoutes(mux, handler, verifier)
	registerAuthorizedPickemRoutes(mux, handler, verifier)
	registerAuthorizedAdminRoutes(mux, handler, verifier)
}

func registerAuthorizedAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/account/signup", RequireAuth(verifier, http.HandlerFunc(handler.Signup)))
	mux.Handle("GET /v1/account/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/account/display-name", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyDisplayName)))
	mux.Handle("DELETE /v1/account", RequireAuth(verifier, http.HandlerFunc(handler.PurgeUser)))
}

func registerAuthorizedPickemRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/picks/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPicks)))
	mux.Handle("PUT /v1/events/{eventID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyEventPicks)))
}

func registerAuthorizedAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/events/{eventID}/result", RequireAuth(verifier, http.HandlerFunc(handler.SaveEventResult)))
	mux.Handle("PUT /v1/events/{eventID}/picks/{userID}/penalty", RequireAuth(verifier, http.HandlerFunc(handler.SetPickPenalty)))
	mux.Handle("PUT /v1/scoring/settings", RequireAuth(verifier, http.HandlerFunc(handler.SaveScoringSettings)))
	mux.Handle("PUT /v1/entities", RequireAuth(verifier, http.HandlerFunc(handler.SaveEntityRegister)))
	mux.Handle("POST /v1/admin/recompute", RequireAuth(verifier, http.HandlerFunc(handler.TriggerManualRecompute)))
	mux.Handle("GET /v1/admin/logs", RequireAuth(verifier, http.HandlerFunc(handler.ListAdminLogs)))

	mux.Handle("POST /v1/admin/invitations", RequireAuth(verifier, http.HandlerFunc(handler.CreateInvitation)))
	mux.Handle("POST /v1/admin/invitations/bulk", RequireAuth(verifier, http.HandlerFunc(handler.CreateBulkInvitations)))
	mux.Handle("GET /v1/admin/invitations", RequireAuth(verifier, http.HandlerFunc(handler.ListInvitations)))
	mux.Handle("PUT /v1/admin/invitations/{code}/note", RequireAuth(verifier, http.HandlerFunc(handler.SetInvitationNote)))
	mux.Handle("DELETE /v1/admin/invitations/{code}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteInvitation)))

	mux.Handle("PUT /v1/users/{userID}/admin", RequireAuth(verifier, http.HandlerFunc(handler.SetUserAdmin)))
	mux.Handle("PUT /v1/users/{userID}/dues", RequireAuth(verifier, http.HandlerFunc(handler.SetUserDuesStatus)))
	mux.Handle("DELETE /v1/users/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.PurgeUser)))
}
