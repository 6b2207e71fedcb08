package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/services"
	"pricehub/templates"
)

type contextKey string

const SessionKey contextKey = "session"

// Cookie names for the sidebar controls.
const (
	cookieRole        = "acting_role"
	cookieMarginBasis = "margin_basis"
	cookieTargetBasis = "target_basis"
	cookieActiveBook  = "active_book"
)

// DefaultRoles are the acting-role choices offered in the sidebar. The role
// is free text as far as the row schema is concerned; it only feeds the
// Updated By stamp.
var DefaultRoles = []string{"Supplier", "Retailer", "Director"}

// GetSession extracts the session settings built by SessionMiddleware.
func GetSession(r *http.Request) templates.SessionData {
	if val, ok := r.Context().Value(SessionKey).(templates.SessionData); ok {
		return val
	}
	return templates.SessionData{Role: DefaultRoles[0], Roles: DefaultRoles}
}

// SessionMiddleware reads the sidebar control cookies (acting role, the two
// calculation bases, the active book), loads the book list, and stores the
// assembled SessionData in the request context for handlers and templates.
func SessionMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		session := templates.SessionData{
			Role:        DefaultRoles[0],
			Roles:       DefaultRoles,
			MarginBasis: services.BasisPrice,
			TargetBasis: services.BasisPrice,
		}

		if c, err := e.Request.Cookie(cookieRole); err == nil && c.Value != "" {
			session.Role = c.Value
		}
		if c, err := e.Request.Cookie(cookieMarginBasis); err == nil {
			session.MarginBasis = services.ParseBasis(c.Value)
		}
		if c, err := e.Request.Cookie(cookieTargetBasis); err == nil {
			session.TargetBasis = services.ParseBasis(c.Value)
		}

		var activeBookID string
		if c, err := e.Request.Cookie(cookieActiveBook); err == nil {
			activeBookID = c.Value
		}

		if activeBookID != "" {
			rec, err := app.FindRecordById("price_books", activeBookID)
			if err == nil {
				session.ActiveBook = &templates.ActiveBook{
					ID:   rec.Id,
					Name: rec.GetString("name"),
				}
			} else {
				log.Printf("middleware: active book %s not found, clearing cookie", activeBookID)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   cookieActiveBook,
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		booksCol, _ := app.FindCollectionByNameOrId("price_books")
		if booksCol != nil {
			records, _ := app.FindAllRecords(booksCol)
			for _, rec := range records {
				isActive := session.ActiveBook != nil && rec.Id == session.ActiveBook.ID
				session.Books = append(session.Books, templates.BookSelectItem{
					ID:           rec.Id,
					Name:         rec.GetString("name"),
					WorkbookPath: rec.GetString("workbook_path"),
					IsActive:     isActive,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), SessionKey, session)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
