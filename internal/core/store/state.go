package store

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
)

// A State is an immutable snapshot of the storefront state.
//
// Reducers never modify maps or slices of a previous snapshot, so a State
// handed to listeners stays valid after later dispatches.
type State struct {
	Basket     BasketState
	Categories CategoriesState
	Products   ProductsState
	Search     SearchState
	Viewconf   ViewconfState
	User       UserState
	Error      ErrorState
}

type (
	BasketState struct {
		Basket                  *domain.Basket
		EligibleShippingMethods []domain.ShippingMethod
		EligiblePaymentMethods  []domain.PaymentMethod
		Payments                []domain.Payment
		LastOrder               *domain.Order
		Loading                 bool
		Err                     error
	}

	CategoriesState struct {
		Tree        domain.CategoryTree
		Selected    string
		Available   string
		ProductSKUs map[string][]string
		Loading     bool
		Err         error
	}

	ProductsState struct {
		Entities map[string]domain.Product
		IDs      []string
		Selected string
		Loading  bool
		Err      error
	}

	SearchState struct {
		Term        string
		Pages       map[int][]string
		Suggestions []domain.Suggestion
		Loading     bool
		Err         error
	}

	ViewconfState struct {
		Page       int
		TotalItems int
		SortKeys   []string
	}

	UserState struct {
		Customer   *domain.Customer
		Authorized bool
	}

	ErrorState struct {
		Current error
		Type    string
	}
)

// InitialState returns the state of a fresh storefront session.
func InitialState() State {
	return State{
		Categories: CategoriesState{
			Tree:        domain.NewCategoryTree(),
			ProductSKUs: map[string][]string{},
		},
		Products: ProductsState{
			Entities: map[string]domain.Product{},
		},
		Search: SearchState{
			Pages: map[int][]string{},
		},
	}
}

// Reduce applies an intent to every slice.
func Reduce(st State, in intent.Intent) State {
	st.Basket = reduceBasket(st.Basket, in)
	st.Categories = reduceCategories(st.Categories, in)
	st.Products = reduceProducts(st.Products, in)
	st.Search = reduceSearch(st.Search, in)
	st.Viewconf = reduceViewconf(st.Viewconf, in)
	st.User = reduceUser(st.User, in)
	st.Error = reduceError(st.Error, in)
	return st
}

func reduceUser(s UserState, in intent.Intent) UserState {
	switch in := in.(type) {
	case intent.LoginUserSuccess:
		customer := in.Customer
		return UserState{Customer: &customer, Authorized: true}
	case intent.LogoutUser:
		return UserState{}
	}
	return s
}

// reduceError keeps the latest failure the presentation cannot attribute to
// a single view: transport failures and server faults.
func reduceError(s ErrorState, in intent.Intent) ErrorState {
	switch in := in.(type) {
	case intent.ClearError:
		return ErrorState{}
	case intent.Failure:
		if in.Cause() != nil && domain.IsTransient(in.Cause()) {
			return ErrorState{Current: in.Cause(), Type: in.Name()}
		}
	}
	return s
}
