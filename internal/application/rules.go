package application

import "github.com/oksasatya/go-task-tracker/pkg/validation"

var (
	nameRules = []validation.Rule{
		{Tag: "required", Message: "Name is required"},
		{Tag: "min=1,max=50", Message: "Name must be between 1 and 50 characters"},
		{Tag: "personname", Message: "Name can only contain letters and spaces"},
	}
	emailRules = []validation.Rule{
		{Tag: "required", Message: "Email is required"},
		{Tag: "email", Message: "Please enter a valid email address"},
		{Tag: "max=254", Message: "Email must be at most 254 characters"},
	}
	passwordRules = []validation.Rule{
		{Tag: "required", Message: "Password is required"},
		{Tag: "pwd", Message: "Password must be at least 8 characters"},
		{Tag: "pwdbytes", Message: "Password must be at most 72 bytes"},
		{Tag: "pwdmix", Message: "Password must contain at least one uppercase letter, one lowercase letter, and one number"},
	}
	confirmRules = []validation.Rule{
		{Tag: "required", Message: "Please confirm your password"},
	}
	titleRules = []validation.Rule{
		{Tag: "required", Message: "Title is required"},
		{Tag: "min=1,max=200", Message: "Title must be between 1 and 200 characters"},
	}
	descriptionRules = []validation.Rule{
		{Tag: "max=1000", Message: "Description must not exceed 1000 characters"},
	}
)

const (
	msgPasswordsMismatch = "Passwords do not match"
	msgInvalidDate       = "Invalid date format"
)
