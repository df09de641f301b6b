package api

import "github.com/go-playground/validator/v10"

// validate checks request bodies that do not go through the inventory.
var validate = validator.New(validator.WithRequiredStructEnabled())
