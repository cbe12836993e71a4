package kernel

import (
	"errors"
	"fmt"

	"freshmarket/internal/pkg/errs"
	"freshmarket/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
// Addresses must be created using the NewAddress constructor to ensure all fields are present.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a delivery destination as a validated postal address.
// Address is an immutable value object; the zero value is invalid and will
// fail validation - use NewAddress to create instances.
//
// Example:
//
//	addr, err := kernel.NewAddress("12 Orchard Lane", "Fresno", "CA", "93701")
//	if err != nil {
//	    // Handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	region     string
	postalCode string

	guard guard.ConstructorGuard
}

// NewAddress creates a new Address from its four components.
// Every component is required; a missing component yields a ValueIsRequiredError.
func NewAddress(street, city, region, postalCode string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setRegion(region),
		addr.setPostalCode(postalCode),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate ensures the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Region returns the state or region of the address.
func (a Address) Region() string {
	return a.region
}

// PostalCode returns the postal code of the address.
func (a Address) PostalCode() string {
	return a.postalCode
}

// IsEqual compares two addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.region == other.region &&
		a.postalCode == other.postalCode
}

// String returns a single-line rendering of the address.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s", a.street, a.city, a.region, a.postalCode)
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setRegion(region string) error {
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}
	a.region = region
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}
