package controllers

import (
	"github.com/gofiber/fiber/v2"

	"linguaplatform/backend/models"
	"linguaplatform/backend/services"
	"linguaplatform/backend/utils"
)

type UserController struct {
	Users *services.Users
}

func NewUserController(users *services.Users) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := uc.Users.Get(c.UserContext(), who.Email)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user.Public())
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := uc.Users.UpdateProfile(c.UserContext(), who.Email, input.Name)
	if err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Profile updated", user.Public())
}

// ListUsers is admin only.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := uc.Users.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return utils.Success(c, fiber.StatusOK, out)
}

func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	who, ok := learner(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := uc.Users.SetRole(c.UserContext(), who, c.Params("email"), input.Role)
	if err != nil {
		return respondError(c, err)
	}
	return utils.OK(c, "Role updated", user.Public())
}
