// Package appshell wires the application shell together: the event bus,
// the session store, and the router, assembled from a single Config.
//
// The shell owns no pages and no UI. An embedding application supplies a
// route table with page loaders, a storage backend for session persistence,
// and an outlet to render into. Everything else, hydration on startup,
// guard-driven redirects, login and logout signal routing, is handled here.
//
// # Usage
//
//	app, err := appshell.New(appshell.Config{
//	    Storage: storage.NewMemoryStore(),
//	    Routes:  router.DefaultRoutes(myPages),
//	})
//	if err != nil {
//	    return err
//	}
//	defer app.Close()
//
//	if err := app.Start(ctx, myOutlet); err != nil {
//	    return err
//	}
//
// After Start, drive the shell through its parts:
//
//	app.Store().Login(ctx, user, accessToken, refreshToken)
//	app.Router().NavigateTo("/my-files")
//	toast.Success(app.Bus(), "Welcome back!")
package appshell
