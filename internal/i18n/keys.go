// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyInternalError = "internal_error"
	KeyRateLimited   = "rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAccountLocked      = "auth.account_locked"
	KeyAuthEmailInUse         = "auth.email_in_use"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// OTP
	KeyOTPSent     = "otp.sent"
	KeyOTPVerified = "otp.verified"
	KeyOTPInvalid  = "otp.invalid"

	// Password
	KeyPasswordChanged        = "password.changed"
	KeyPasswordRequired       = "password.required_fields"
	KeyPasswordWeak           = "password.weak"
	KeyPasswordTooShort       = "password.too_short"
	KeyPasswordSameAsOld      = "password.same_as_old"
	KeyPasswordOldIncorrect   = "password.old_incorrect"
	KeyPasswordMismatch       = "password.mismatch"
	KeyPasswordResetRequired  = "password.reset_required_fields"
	KeyPasswordResetEmailSent = "password.reset_email_sent"
	KeyPasswordResetSuccess   = "password.reset_success"
	KeyPasswordResetInvalid   = "password.reset_invalid_token"

	// Email
	KeyEmailRequired     = "email.required"
	KeyEmailInvalid      = "email.invalid_address"
	KeyEmailUnknownEmail = "email.unknown_account"

	// User Management
	KeyUserNotFound       = "user.not_found"
	KeyUserInvalidID      = "user.invalid_id"
	KeyUserProfileFetched = "user.profile_fetched"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserAvatarUpdated  = "user.avatar_updated"
	KeyUserListFetched    = "user.list_fetched"
	KeyUserDeleted        = "user.deleted"
	KeyUserLocked         = "user.locked"
	KeyUserUnlocked       = "user.unlocked"
	KeyUserRoleChanged    = "user.role_changed"
	KeyUserInvalidRole    = "user.invalid_role"
	KeyUserAvatarNotOwned = "user.avatar_not_owned"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Products
	KeyProductCreated         = "product.created"
	KeyProductUpdated         = "product.updated"
	KeyProductDeleted         = "product.deleted"
	KeyProductNotFound        = "product.not_found"
	KeyProductFetched         = "product.fetched"
	KeyProductListFetched     = "product.list_fetched"
	KeyProductNewArrivals     = "product.new_arrivals_fetched"
	KeyProductTopSelling      = "product.top_selling_fetched"
	KeyProductTopDiscounted   = "product.top_discounted_fetched"
	KeyProductSearchFetched   = "product.search_fetched"
	KeyProductSearchKeyword   = "product.search_keyword_required"
	KeyProductByGender        = "product.by_gender_fetched"
	KeyProductBySize          = "product.by_size_fetched"
	KeyProductColors          = "product.colors_fetched"
	KeyProductSizes           = "product.sizes_fetched"
	KeyProductVariants        = "product.variants_fetched"
	KeyProductInvalidID       = "product.invalid_id"
	KeyProductInvalidGender   = "product.invalid_gender"
	KeyProductInvalidRef      = "product.invalid_reference"
	KeyProductInvalidSort     = "product.invalid_sort"
	KeyProductInvalidNumber   = "product.invalid_number"
	KeyProductInvalidFlag     = "product.invalid_flag"
	KeyProductInvalidPrice    = "product.invalid_price"
	KeyProductUnknownCategory = "product.unknown_category"
	KeyProductUnknownBrand    = "product.unknown_brand"

	// Taxonomy
	KeyCategoryCreated   = "category.created"
	KeyCategoryList      = "category.list_fetched"
	KeyCategorySlugTaken = "category.slug_taken"
	KeyBrandCreated      = "brand.created"
	KeyBrandList         = "brand.list_fetched"
	KeyBrandSlugTaken    = "brand.slug_taken"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
	KeyFileNoneUploaded  = "file.none_uploaded"
)
