package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/statuspulse/monitoring-system/internal/api/metrics"
	"github.com/statuspulse/monitoring-system/internal/api/middleware"
	"github.com/statuspulse/monitoring-system/internal/core/domain"
	"github.com/statuspulse/monitoring-system/internal/core/ports"
)

// Handler upgrades authenticated requests to channel sessions and serves
// their command loop.
type Handler struct {
	users     ports.UserService
	hub       *Hub
	jwtSecret string
	log       zerolog.Logger
	upgrader  websocket.Upgrader
}

func NewHandler(users ports.UserService, hub *Hub, jwtSecret string, log zerolog.Logger) *Handler {
	return &Handler{
		users:     users,
		hub:       hub,
		jwtSecret: jwtSecret,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Serve handles GET /ws. The session token comes from the Authorization
// header or, for browser clients that cannot set headers on websocket
// requests, the token query parameter. Identity is resolved before the
// upgrade; an anonymous caller never gets a socket.
func (h *Handler) Serve(c echo.Context) error {
	identity, err := h.resolveIdentity(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sess := newSession(conn, identity)
	h.hub.register(sess)
	metrics.ChannelSessions.Inc()
	h.log.Debug().Str("user_id", identity.UserID).Msg("channel session opened")

	defer func() {
		h.hub.unregister(sess)
		sess.close()
		metrics.ChannelSessions.Dec()
		h.log.Debug().Str("user_id", identity.UserID).Msg("channel session closed")
	}()

	ctx := c.Request().Context()
	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Str("user_id", identity.UserID).Msg("channel read failed")
			}
			return nil
		}

		reply := h.Dispatch(ctx, sess, cmd)
		if err := sess.send(reply); err != nil {
			h.log.Warn().Err(err).Str("user_id", identity.UserID).Msg("channel write failed")
			return nil
		}
	}
}

func (h *Handler) resolveIdentity(c echo.Context) (domain.Identity, error) {
	token := c.QueryParam("token")
	if token == "" {
		const prefix = "Bearer "
		auth := c.Request().Header.Get("Authorization")
		if len(auth) > len(prefix) {
			token = auth[len(prefix):]
		}
	}
	if token == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	claims, err := middleware.ParseClaims(token, h.jwtSecret)
	if err != nil {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return domain.Identity{UserID: userID, Role: domain.Role(role)}, nil
}

// Dispatch executes one command and builds its reply. Failures never
// propagate past here: every error becomes an {ok:false} envelope.
func (h *Handler) Dispatch(ctx context.Context, sess *Session, cmd Command) Reply {
	reply := h.dispatch(ctx, sess, cmd)
	reply.ID = cmd.ID

	result := "ok"
	if !reply.OK {
		result = "error"
	}
	metrics.ChannelCommandsTotal.WithLabelValues(cmd.Action, result).Inc()
	return reply
}

func (h *Handler) dispatch(ctx context.Context, sess *Session, cmd Command) Reply {
	switch cmd.Action {
	case actionCreateUser:
		var data createUserData
		if err := json.Unmarshal(cmd.Data, &data); err != nil {
			return Reply{Msg: "invalid payload"}
		}
		_, err := h.users.Create(ctx, sess.identity, ports.CreateUserInput{
			Username: data.Username,
			Password: data.Password,
			Email:    data.Email,
			Role:     data.UserType,
		})
		if err != nil {
			return errorReply(err)
		}
		return Reply{OK: true, Msg: "User created successfully."}

	case actionDeleteUser:
		var data deleteUserData
		if err := json.Unmarshal(cmd.Data, &data); err != nil {
			return Reply{Msg: "invalid payload"}
		}
		if err := h.users.Delete(ctx, sess.identity, data.UserID); err != nil {
			return errorReply(err)
		}
		return Reply{OK: true, Msg: "User deleted successfully."}

	case actionGetUsers:
		users, err := h.users.List(ctx, sess.identity)
		if err != nil {
			return errorReply(err)
		}
		views := make([]userView, 0, len(users))
		for _, u := range users {
			views = append(views, toUserView(u))
		}
		return Reply{OK: true, Users: views}

	case actionUpdateUserType:
		var data updateUserTypeData
		if err := json.Unmarshal(cmd.Data, &data); err != nil {
			return Reply{Msg: "invalid payload"}
		}
		if err := h.users.ChangeRole(ctx, sess.identity, data.UserID, data.UserType); err != nil {
			return errorReply(err)
		}
		return Reply{OK: true, Msg: "User type updated."}

	case actionDisconnectOthers:
		h.hub.DisconnectOthers(sess.identity.UserID, sess)
		return Reply{OK: true}

	default:
		return Reply{Msg: "unknown action: " + cmd.Action}
	}
}

// errorReply converts a core error into the channel envelope, attaching a
// fieldErrors object for field-tagged failures.
func errorReply(err error) Reply {
	reply := Reply{Msg: userMessage(err)}

	var fe *domain.FieldError
	if errors.As(err, &fe) {
		reply.FieldErrors = map[string]string{fe.Field: userMessage(err)}
	}
	return reply
}

// userMessage flattens store failures and unexpected errors to a generic
// message; everything in the domain taxonomy passes through as-is.
func userMessage(err error) string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return fe.Err.Error()
	}

	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store unavailable"
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrSelfDelete),
		errors.Is(err, domain.ErrInvalidRole):
		return err.Error()
	}
	return "internal error"
}
