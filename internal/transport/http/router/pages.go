package router

import (
	"github.com/gin-gonic/gin"

	"cafe-directory/internal/transport/http/handler"
	mdw "cafe-directory/internal/transport/http/middleware"
)

func mountPages(r gin.IRoutes, web *handler.Web) {
	r.GET("/", web.Index)
	r.GET("/all_cafes", web.AllCafes)
	r.GET("/cafe/:id", web.ShowCafe)
	r.POST("/cafe/:id", web.AddReview)

	loggedIn := mdw.RequireLogin(web.LoginToAdd)
	r.GET("/add", loggedIn, web.AddCafeForm)
	r.POST("/add", loggedIn, web.AddCafe)

	r.GET("/sign-up", web.SignUpForm)
	r.POST("/sign-up", web.SignUp)
	r.GET("/login", web.LoginForm)
	r.POST("/login", web.Login)
	r.GET("/logout", web.Logout)

	r.GET("/contact", web.ContactForm)
	r.POST("/contact", web.Contact)
}
