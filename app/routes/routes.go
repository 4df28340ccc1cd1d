package routes

import (
	"github.com/gorilla/mux"

	"instakilo/app/auth"
	"instakilo/app/controllers"
	"instakilo/app/middleware"
	"instakilo/app/services"
	"instakilo/app/storage"
)

// Setup wires every controller behind the auth middleware. All routes are
// authenticated: token verification and the user-exists check apply
// uniformly, including the read paths.
func Setup(store storage.Store, authenticator auth.Authenticator) *mux.Router {
	hashtags := services.NewHashTagIndex(store)
	locations := services.NewLocationIndex(store)
	roster := services.NewRosterService(store)
	users := services.NewUserService(store)
	posts := services.NewPostService(store, hashtags, locations, roster)
	comments := services.NewCommentService(store)

	postController := controllers.NewPostController(posts)
	commentController := controllers.NewCommentController(comments)
	searchController := controllers.NewSearchController(hashtags, locations)
	userController := controllers.NewUserController(users)

	router := mux.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(authenticator, users))

	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts", postController.Create).Methods("POST")
	api.HandleFunc("/posts/mine", postController.Mine).Methods("GET")
	api.HandleFunc("/posts/{id}", postController.Show).Methods("GET")
	api.HandleFunc("/posts/{id}", postController.Update).Methods("PUT")
	api.HandleFunc("/posts/{id}", postController.Delete).Methods("DELETE")

	api.HandleFunc("/posts/{id}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/posts/{id}/comments/{commentId}", commentController.Delete).Methods("DELETE")

	api.HandleFunc("/hashtags", searchController.HashTags).Methods("GET")
	api.HandleFunc("/hashtags/{tag}", searchController.HashTagPosts).Methods("GET")
	api.HandleFunc("/locations", searchController.Locations).Methods("GET")
	api.HandleFunc("/locations/{placeId}", searchController.LocationPosts).Methods("GET")

	api.HandleFunc("/profile", userController.MyProfile).Methods("GET")
	api.HandleFunc("/profile", userController.EditProfile).Methods("PUT")
	api.HandleFunc("/users/{id}", userController.OtherProfile).Methods("GET")

	return router
}
