package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/akbarovz/gadgethub/internal/auth"
	"github.com/akbarovz/gadgethub/internal/contact"
	"github.com/akbarovz/gadgethub/internal/errorz"
	"github.com/akbarovz/gadgethub/internal/market"
	"github.com/akbarovz/gadgethub/internal/todo"
)

// home renders the gadget showcase.
func (s *Server) home() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.writeView(w, r, "home", catalog())
		if err != nil {
			s.handleError(w, r, err)
		}
	})
}

// pricing renders the subscription plans.
func (s *Server) pricing() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.writeView(w, r, "pricing", plans())
		if err != nil {
			s.handleError(w, r, err)
		}
	})
}

// postContact persists a contact form submission.
func (s *Server) postContact() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm[contact.NewMessage](s, r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		_, err = s.deps.ContactService.Submit(r.Context(), form)

		var invalid errorz.InvalidInput
		switch {
		case errors.As(err, &invalid):
			s.flashAndRedirect(w, r, "danger", "Please fill in all fields.", "/contact")
		case err != nil:
			s.handleError(w, r, err)
		default:
			s.flashAndRedirect(w, r, "success", "Your message has been sent!", "/contact")
		}
	})
}

// postRegister creates a new user account.
func (s *Server) postRegister() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm[auth.Registration](s, r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		_, err = s.deps.AuthService.Register(r.Context(), form)

		var invalid errorz.InvalidInput
		switch {
		case errors.Is(err, auth.ErrDuplicateUser):
			s.flashAndRedirect(w, r, "danger", "That username or email is already taken.", "/register")
		case errors.As(err, &invalid):
			s.flashAndRedirect(w, r, "danger", invalidInputText(invalid), "/register")
		case err != nil:
			s.handleError(w, r, err)
		default:
			s.flashAndRedirect(w, r, "success", "Registration successful, please log in.", "/login")
		}
	})
}

// postLogin verifies credentials and establishes the identity.
func (s *Server) postLogin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm[auth.Credentials](s, r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		user, err := s.deps.AuthService.Authenticate(r.Context(), form)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.flashAndRedirect(w, r, "danger", "Incorrect email or password.", "/login")
			return
		}
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		// We clear the CSRF token cookie to provide defense in depth
		// against fixation attacks: a token an attacker obtained before
		// the login is worthless afterwards. A new token is generated on
		// the next GET request after the redirect.
		http.SetCookie(w, &http.Cookie{
			Name:   csrfTokenCookieName,
			Path:   "/",
			MaxAge: -1,
		})

		sess, err := sessionFromCtx(r.Context())
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		sess.SetIdentity(user.ID, user.Username)
		sess.AddFlash("success", fmt.Sprintf("Welcome back, %s!", user.Username))

		err = s.deps.SessionStore.Save(r, w, sess)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		s.redirect(w, r, "/dashboard")
	})
}

// getLogout clears the identity. Safe to call without one.
func (s *Server) getLogout() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromCtx(r.Context())
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		if _, ok := IdentityFromContext(r.Context()); ok {
			sess.DeleteIdentity()
			sess.AddFlash("info", "You have been logged out.")

			err = s.deps.SessionStore.Save(r, w, sess)
			if err != nil {
				s.handleError(w, r, err)
				return
			}
		}

		s.redirect(w, r, "/")
	})
}

// dashboardData is the view data for the dashboard page.
type dashboardData struct {
	Tasks     []todo.Task
	DoneCount int
}

// dashboard shows the caller's task list, newest first.
func (s *Server) dashboard() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())

		tasks, err := s.deps.TaskService.List(r.Context(), id.UserID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		err = s.writeView(w, r, "dashboard", dashboardData{
			Tasks:     tasks,
			DoneCount: todo.DoneCount(tasks),
		})
		if err != nil {
			s.handleError(w, r, err)
		}
	})
}

// addTask creates a task for the caller.
func (s *Server) addTask() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())

		form, err := decodeForm[struct{ Title string }](s, r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		_, err = s.deps.TaskService.Add(r.Context(), id.UserID, form.Title)

		var invalid errorz.InvalidInput
		switch {
		case errors.As(err, &invalid):
			s.flashAndRedirect(w, r, "warning", "Task title cannot be empty.", "/dashboard")
		case err != nil:
			s.handleError(w, r, err)
		default:
			s.redirect(w, r, "/dashboard")
		}
	})
}

// toggleTask flips a task's done flag iff the caller owns it.
func (s *Server) toggleTask() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())

		taskID, err := pathID(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		err = s.deps.TaskService.Toggle(r.Context(), id.UserID, taskID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		s.redirect(w, r, "/dashboard")
	})
}

// deleteTask deletes a task iff the caller owns it.
func (s *Server) deleteTask() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())

		taskID, err := pathID(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		err = s.deps.TaskService.Delete(r.Context(), id.UserID, taskID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		s.redirect(w, r, "/dashboard")
	})
}

// marketplace shows all listings of all users, newest first.
// Unlike the task list, the board is deliberately shared.
func (s *Server) marketplace() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listings, err := s.deps.MarketService.List(r.Context())
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		err = s.writeView(w, r, "marketplace", listings)
		if err != nil {
			s.handleError(w, r, err)
		}
	})
}

// postListing creates a listing for the caller.
func (s *Server) postListing() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())

		form, err := decodeForm[market.NewListing](s, r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		_, err = s.deps.MarketService.Create(r.Context(), id.UserID, form)

		var invalid errorz.InvalidInput
		switch {
		case errors.As(err, &invalid):
			s.flashAndRedirect(w, r, "danger", invalidInputText(invalid), "/marketplace")
		case err != nil:
			s.handleError(w, r, err)
		default:
			s.flashAndRedirect(w, r, "success", "Listing published.", "/marketplace")
		}
	})
}

// deleteListing deletes a listing iff the caller owns it.
func (s *Server) deleteListing() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())

		listingID, err := pathID(r)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		err = s.deps.MarketService.Delete(r.Context(), id.UserID, listingID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}

		s.flashAndRedirect(w, r, "info", "Listing removed.", "/marketplace")
	})
}
