// Package auth handles member registration, login, and profile reads.
// Passwords are bcrypt-hashed; sessions are stateless HS256 JWTs.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"posada/apperr"
	"posada/middleware"
	"posada/models"
	"posada/store"
	"posada/utils"
)

type Handler struct {
	store *store.Serialized
}

func NewHandler(st *store.Serialized) *Handler {
	return &Handler{store: st}
}

// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Todos los campos son obligatorios.")
		return
	}
	if input.Name == "" || input.Phone == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Todos los campos son obligatorios.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error interno del servidor al registrar.")
		return
	}

	err = h.store.Update(r.Context(), func(state *store.State) error {
		for _, user := range state.Users {
			if user.Phone == input.Phone {
				return apperr.New(apperr.Validation, "El número de celular ya está registrado.")
			}
		}
		state.Users = append(state.Users, models.User{
			UserID:   uuid.NewString(),
			Name:     input.Name,
			Phone:    input.Phone,
			Password: string(hashed),
			Role:     models.RoleSocio,
		})
		return nil
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Usuario registrado con éxito."})
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"` // requested portal, not the stored role
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Credenciales incorrectas.")
		return
	}

	var found models.User
	err := h.store.View(r.Context(), func(state store.State) error {
		for _, user := range state.Users {
			if user.Phone == input.Phone {
				found = user
				return nil
			}
		}
		return apperr.New(apperr.Validation, "Credenciales incorrectas.")
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(input.Password)) != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Credenciales incorrectas.")
		return
	}

	// Selecting the admin portal requires the stored role to match.
	if input.Role == models.RoleAdmin && found.Role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "No tienes permisos de administrador.")
		return
	}

	token, err := middleware.GenerateToken(found)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error interno del servidor al iniciar sesión.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Bienvenido, " + found.Name + "!",
		"token":   token,
	})
}

// GET /api/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var found models.User
	err := h.store.View(r.Context(), func(state store.State) error {
		for _, user := range state.Users {
			if user.UserID == userID {
				found = user
				return nil
			}
		}
		return apperr.New(apperr.NotFound, "Usuario no encontrado.")
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, found)
}
