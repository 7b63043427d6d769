// Package ws implements the persistent bidirectional event channel used to
// manage accounts from an authenticated administrative session. Commands
// and replies are JSON envelopes correlated by id; transport framing is
// plain websocket text messages.
package ws

import (
	"encoding/json"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

// Command is an inbound request on the channel.
type Command struct {
	ID     int64           `json:"id"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Reply is the outbound result envelope: {ok, msg?, users?, fieldErrors?}.
type Reply struct {
	ID          int64             `json:"id"`
	OK          bool              `json:"ok"`
	Msg         string            `json:"msg,omitempty"`
	Users       []userView        `json:"users,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// userView is the channel projection of an account; the credential digest
// is never part of it.
type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		Active:   u.Active,
	}
}

// createUserData carries the createUser payload. The wire field userType is
// the channel's historical name for the role.
type createUserData struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	UserType string `json:"userType"`
}

type deleteUserData struct {
	UserID string `json:"userID"`
}

type updateUserTypeData struct {
	UserID   string `json:"userID"`
	UserType string `json:"newUserType"`
}

const (
	actionCreateUser       = "createUser"
	actionDeleteUser       = "deleteUser"
	actionGetUsers         = "getUsers"
	actionUpdateUserType   = "updateUserType"
	actionDisconnectOthers = "disconnectOtherClients"
)
