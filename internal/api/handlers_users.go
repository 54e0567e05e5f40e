package api

import (
	"log"
	"net/http"

	"github.com/projecthelena/roster/internal/db"
	"github.com/projecthelena/roster/internal/logging"
	"github.com/projecthelena/roster/internal/service"
)

const msgFetchUsersFailed = "Error fetching users"

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type usersResponse struct {
	Users []db.User `json:"users"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// GetAllUsers returns every user record in the persisted document.
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object} object{users=[]object}
// @Failure      500  {object} object{message=string} "Error fetching users"
// @Failure      429  {object} object{error=string} "rate limit exceeded"
// @Router       /users [get]
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetUsers(r.Context())
	if err != nil {
		// The cause stays server-side; clients only see the generic message.
		log.Printf("ERROR: Failed to load users: %s", logging.Sanitize(err.Error()))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgFetchUsersFailed})
		return
	}

	if users == nil {
		users = []db.User{}
	}
	writeJSON(w, http.StatusOK, usersResponse{Users: users})
}
