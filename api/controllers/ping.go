package controllers

import (
	"net/http"
	"time"

	"github.com/advanceapparels/tradeshow-portal/api/responses"
)

type pingResponse struct {
	Scope      string    `json:"scope"`
	Status     string    `json:"status"`
	ServerTime time.Time `json:"server_time"`
}

// PublicPing answers the portal frontend's connectivity probe.
func PublicPing() http.HandlerFunc {
	return ping("public")
}

// AdminPing answers the admin console's connectivity probe.
func AdminPing() http.HandlerFunc {
	return ping("admin")
}

func ping(scope string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, pingResponse{Scope: scope, Status: "ok", ServerTime: time.Now().UTC()})
	}
}
