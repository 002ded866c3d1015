package service

// Messages returned to clients. Casing and punctuation differ per operation
// and are part of the API.
const (
	msgAllFieldsRequired      = "All fields are required"
	msgEmailExists            = "Email already exists"
	msgPasswordConfirmation   = "Password and password confirmation does not match"
	msgRegisterFailed         = "There is an error creating the user."
	msgInvalidCredentials     = "email or password is incorrect"
	msgUnauthorized           = "Unauthorized"
	msgUserNotFound           = "User not found."
	msgUpdateUnauthorized     = "unauthorized"
	msgUpdateFieldsRequired   = "all fields are required."
	msgUpdateEmailExists      = "email is already exist."
	msgUpdatePasswordMismatch = "password not matched."
	msgUpdateUserNotFound     = "user not found."
	msgUpdateUserFailed       = "There is an error updating the user"
	msgDeleteUserNotFound     = "User not found"
	msgDeleteUserFailed       = "There is an error deleting the user."

	msgFillAllFields         = "Please fill all fields."
	msgNameType              = "Product name must be a string."
	msgDescriptionType       = "Product description must be text."
	msgPriceType             = "Product price must be a decimal number."
	msgTagType               = "Product tag must be an array."
	msgPriceMin              = "Product price must be at least 0."
	msgCreateProductFailed   = "There is an error adding this product."
	msgProductNotFound       = "product not found."
	msgUpdateProductNotFound = "Product not found"
	msgUpdateNotOwner        = "Unauthorized update"
	msgUpdateProductFailed   = "There is an error updating this product."
	msgDeleteProductNotFound = "product not found"
	msgDeleteNotOwner        = "unauthorized deletion"
	msgDeleteProductFailed   = "There is an error deleting this product."
)
