package router

// Shell paths. The route table below is the complete navigation surface
// of the application.
const (
	PathLanding   = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathFiles     = "/my-files"
	PathUpload    = "/upload"
	PathProfile   = "/profile"

	// CatchAll matches any path no other route matched. It must be the
	// last entry of a route table.
	CatchAll = "(.*)"
)

// publicPaths are reachable only by anonymous users (authenticated users
// are redirected to the dashboard).
var publicPaths = []string{PathLanding, PathLogin, PathRegister}

// protectedPaths require an authenticated session.
var protectedPaths = []string{PathDashboard, PathFiles, PathUpload, PathProfile}

// RequiresAuth reports whether path belongs to the fixed list of
// protected routes. It is used internally by HandleAuthRedirect and
// exposed for reuse by page components.
func RequiresAuth(path string) bool {
	return contains(protectedPaths, path)
}

// IsPublicRoute reports whether path belongs to the fixed list of public
// routes. This is a plain membership test of the argument.
func IsPublicRoute(path string) bool {
	return contains(publicPaths, path)
}

func contains(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}

// Pages supplies the lazy loaders for every page the shell navigates to.
type Pages struct {
	Landing   Loader
	Login     Loader
	Register  Loader
	Dashboard Loader
	Files     Loader
	Upload    Loader
	Profile   Loader
	NotFound  Loader
}

// DefaultRoutes builds the shell's route table from a set of page loaders.
// Order matters only for the catch-all, which is evaluated last.
func DefaultRoutes(p Pages) []Route {
	return []Route{
		{Pattern: PathLanding, Name: "landing", Guard: PublicOnly, Load: p.Landing},
		{Pattern: PathLogin, Name: "login", Guard: PublicOnly, Load: p.Login},
		{Pattern: PathRegister, Name: "register", Guard: PublicOnly, Load: p.Register},
		{Pattern: PathDashboard, Name: "dashboard", Guard: Protected, Load: p.Dashboard},
		{Pattern: PathFiles, Name: "my-files", Guard: Protected, Load: p.Files},
		{Pattern: PathUpload, Name: "upload", Guard: Protected, Load: p.Upload},
		{Pattern: PathProfile, Name: "profile", Guard: Protected, Load: p.Profile},
		{Pattern: CatchAll, Name: "not-found", Guard: AllowAll, Load: p.NotFound},
	}
}

// PlaceholderPages returns minimal static pages for every route. They let
// the shell run before an application supplies real page modules, and keep
// tests independent of page internals.
func PlaceholderPages() Pages {
	return Pages{
		Landing:   StaticPage("landing", "<h1>FileDrop</h1>"),
		Login:     StaticPage("login", "<h1>Sign in</h1>"),
		Register:  StaticPage("register", "<h1>Create account</h1>"),
		Dashboard: StaticPage("dashboard", "<h1>Dashboard</h1>"),
		Files:     StaticPage("my-files", "<h1>My files</h1>"),
		Upload:    StaticPage("upload", "<h1>Upload</h1>"),
		Profile:   StaticPage("profile", "<h1>Profile</h1>"),
		NotFound:  StaticPage("not-found", "<h1>Page not found</h1>"),
	}
}
