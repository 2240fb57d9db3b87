package enums

// Surface is a navigation target of the client.
type Surface string

const (
	SurfaceLogin     Surface = "login"
	SurfaceRegister  Surface = "register"
	SurfaceDashboard Surface = "dashboard"
	SurfacePosts     Surface = "posts"
	SurfaceProfile   Surface = "profile"
)
