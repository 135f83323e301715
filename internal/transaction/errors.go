package transaction

import "github.com/compostlink/compostlink/internal/apperr"

var (
	ErrNotFound              = apperr.New(apperr.KindNotFound, "TRANSACTION_NOT_FOUND", "transaction not found")
	ErrInvalidOffer          = apperr.New(apperr.KindValidation, "INVALID_OFFER", "offer needs a listing, a requester and a quantity from 1 to 1000000 within the amount limit")
	ErrListingNotFound       = apperr.New(apperr.KindNotFound, "LISTING_NOT_FOUND", "listing not found")
	ErrListingUnavailable    = apperr.New(apperr.KindConflict, "LISTING_UNAVAILABLE", "listing is not accepting offers")
	ErrOwnListing            = apperr.New(apperr.KindValidation, "OWN_LISTING", "cannot make an offer on your own listing")
	ErrDuplicatePendingOffer = apperr.New(apperr.KindConflict, "DUPLICATE_PENDING_OFFER", "a pending offer for this listing already exists")
	ErrDependencyLookup      = apperr.New(apperr.KindDependency, "DEPENDENCY_LOOKUP_FAILED", "required record could not be loaded")
	ErrAccountIneligible     = apperr.New(apperr.KindForbidden, "ACCOUNT_INELIGIBLE", "account is not allowed to transact")
	ErrInvalidTransition     = apperr.New(apperr.KindConflict, "INVALID_TRANSITION", "transaction cannot move to the requested status")
	ErrForbidden             = apperr.New(apperr.KindForbidden, "FORBIDDEN", "not a party to this transaction")
	ErrProofRequired         = apperr.New(apperr.KindValidation, "PROOF_REQUIRED", "proof of completion is required")
)
