package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/service"
)

// Services bundles the use-case implementations the HTTP surface exposes.
type Services struct {
	Users     service.UserService
	Pets      service.PetService
	Adoptions service.AdoptionService
	Articles  service.ArticleService
	Missing   service.MissingService
	Sightings service.SightingService
	Amenities service.AmenityService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; orchestration lives in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Readiness checks DB connectivity; healthz is plain liveness.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register(svcs.Users))
	authGroup.Post("/login", Login(svcs.Users))
	authGroup.Get("/getUserByUserId/:userId", GetUser(svcs.Users))
	authGroup.Put("/updateUserDetails/:userId", UpdateUser(svcs.Users))
	authGroup.Post("/send-reset-password", SendResetPassword(svcs.Users))

	pet := api.Group("/pet")
	pet.Get("/getPetsByUserId/:userId", ListPetsByUser(svcs.Pets))
	pet.Post("/addPet", AddPet(svcs.Pets))
	pet.Put("/updatePet", UpdatePet(svcs.Pets))
	pet.Delete("/deletePet/:petId", DeletePet(svcs.Pets))

	adoption := api.Group("/adoption")
	adoption.Get("/getAllAdoption", GetAllAdoptions(svcs.Adoptions))
	adoption.Get("/getAdoptionByAdp/:userId", GetAdoptionsByLister(svcs.Adoptions))
	adoption.Get("/getIndAdoption/:petId", GetAdoption(svcs.Adoptions))
	adoption.Post("/addAdoption", AddAdoption(svcs.Adoptions))
	adoption.Put("/editAdoption/:petId", EditAdoption(svcs.Adoptions))
	adoption.Delete("/deleteAdoption/:petId", DeleteAdoption(svcs.Adoptions))

	article := api.Group("/article")
	article.Get("/getAllArticles", GetAllArticles(svcs.Articles))
	article.Get("/getArticleByArticleId/:articleId", GetArticle(svcs.Articles))
	article.Get("/getArticleByPosterId/:posterId", GetArticlesByPoster(svcs.Articles))
	article.Post("/addArticle", AddArticle(svcs.Articles))
	article.Put("/editArticle/:articleId", EditArticle(svcs.Articles))
	article.Delete("/deleteArticle/:articleId", DeleteArticle(svcs.Articles))

	missing := api.Group("/missing")
	missing.Get("/getAllMissingPets", GetAllMissingPets(svcs.Missing))
	missing.Get("/getMissingById/:missingId", GetMissingByID(svcs.Missing))
	missing.Post("/addMissing", AddMissing(svcs.Missing))
	missing.Put("/markFound/:missingId", MarkFound(svcs.Missing))

	sighting := api.Group("/sighting")
	sighting.Get("/getAllSightings", GetAllSightings(svcs.Sightings))
	sighting.Post("/addSighting", AddSighting(svcs.Sightings))

	maps := api.Group("/googlemaps")
	maps.Get("/getNearbyByTypes", GetNearbyByTypes(svcs.Amenities))
	maps.Get("/filterLocations", FilterLocations(svcs.Amenities))
	maps.Get("/searchLocationByKeyword", SearchLocationByKeyword(svcs.Amenities))
}
