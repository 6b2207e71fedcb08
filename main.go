package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"pricehub/collections"
	"pricehub/handlers"
	"pricehub/sheet"
	"pricehub/state"
)

func main() {
	app := pocketbase.New()

	deps := &handlers.Deps{
		Workspace: state.New(),
		Sheets:    sheet.NewRegistry(10 * time.Second),
	}

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Apply session middleware globally
		se.Router.BindFunc(handlers.SessionMiddleware(app))

		// ── Price book registry ──────────────────────────────────
		se.Router.GET("/books", handlers.HandleBookList(app))
		se.Router.GET("/books/create", handlers.HandleBookCreate(app))
		se.Router.POST("/books", handlers.HandleBookSave(app))
		se.Router.POST("/books/{id}/activate", handlers.HandleBookActivate(app))
		se.Router.DELETE("/books/{id}", handlers.HandleBookDelete(app, deps))

		// ── Price list editor ────────────────────────────────────
		se.Router.GET("/books/{id}/table", handlers.HandleRowTable(app, deps))
		se.Router.POST("/books/{id}/recompute", handlers.HandleRecompute(app, deps))
		se.Router.POST("/books/{id}/rows", handlers.HandleRowAppend(app, deps))
		se.Router.DELETE("/books/{id}/rows/{no}", handlers.HandleRowDelete(app, deps))

		// ── Workbook sync ────────────────────────────────────────
		se.Router.POST("/books/{id}/push", handlers.HandlePush(app, deps))
		se.Router.POST("/books/{id}/reload", handlers.HandleReload(app, deps))

		// ── Import & export ──────────────────────────────────────
		se.Router.GET("/books/{id}/import", handlers.HandleImportPage(app))
		se.Router.POST("/books/{id}/import", handlers.HandleImportUpload(app, deps))
		se.Router.GET("/books/{id}/export/excel", handlers.HandleExportExcel(app, deps))
		se.Router.GET("/books/{id}/export/pdf", handlers.HandleExportPDF(app, deps))

		// Editor page (after specific /books/{id}/* routes)
		se.Router.GET("/books/{id}", handlers.HandleEditor(app, deps))

		// ── Session settings ─────────────────────────────────────
		se.Router.POST("/settings", handlers.HandleSettingsSave())

		// Redirect home to the active book, or the registry
		se.Router.GET("/", func(e *core.RequestEvent) error {
			session := handlers.GetSession(e.Request)
			if session.ActiveBook != nil {
				return e.Redirect(http.StatusFound, "/books/"+session.ActiveBook.ID)
			}
			return e.Redirect(http.StatusFound, "/books")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
