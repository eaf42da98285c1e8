package handler

import (
	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/model"
	"petcareapi/internal/service"
)

// GetAllArticles lists every article with the poster resolved.
func GetAllArticles(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.GetAll(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// GetArticle returns one article by id.
func GetArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Get(c.UserContext(), c.Params("articleId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

// GetArticlesByPoster lists the articles written by one user.
func GetArticlesByPoster(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.GetByPoster(c.UserContext(), c.Params("posterId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// AddArticle creates an article from a multipart form; the thumbnail is sent
// under "thumbnailImage".
func AddArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.ArticleInput{
			Title:    c.FormValue("articleTitle"),
			Body:     c.FormValue("articleBody"),
			Category: c.FormValue("articleCategory"),
			PosterID: c.FormValue("posterId"),
		}

		thumbnail, closeFn, err := formUpload(c, "thumbnailImage")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		a, err := svc.Create(c.UserContext(), in, thumbnail)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// EditArticle applies a partial update from a multipart form; absent fields
// are left unchanged.
func EditArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var upd model.ArticleUpdate
		if v := c.FormValue("articleTitle"); v != "" {
			upd.Title = &v
		}
		if v := c.FormValue("articleBody"); v != "" {
			upd.Body = &v
		}
		if v := c.FormValue("articleCategory"); v != "" {
			upd.Category = &v
		}

		thumbnail, closeFn, err := formUpload(c, "thumbnailImage")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer closeFn()

		a, err := svc.Edit(c.UserContext(), c.Params("articleId"), upd, thumbnail)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	}
}

// DeleteArticle removes an article and its thumbnail.
func DeleteArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("articleId")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
