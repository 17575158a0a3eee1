package core

const (
	Food               Category = "Food"
	Groceries          Category = "Groceries"
	Transport          Category = "Transport"
	Shopping           Category = "Shopping"
	ClothesAccessories Category = "Clothes & Accessories"
	ElectronicsGadgets Category = "Electronics & Gadgets"
	Utilities          Category = "Utilities"
	HealthFitness      Category = "Health & Fitness"
	Gaming             Category = "Gaming"
	Entertainment      Category = "Entertainment"
	Education          Category = "Education"
	GiftsDonations     Category = "Gifts & Donations"
	TravelTrips        Category = "Travel & Trips"
	HousingRent        Category = "Housing & Rent"
	SavingsInvestments Category = "Savings & Investments"
	Insurance          Category = "Insurance"
	EMILoans           Category = "EMI/Loans"
	Pets               Category = "Pets"
	OtherCategory      Category = "Other"
)

const (
	UPI        PaymentMode = "UPI"
	CreditCard PaymentMode = "Credit Card"
	DebitCard  PaymentMode = "Debit Card"
	Cash       PaymentMode = "Cash"
	Wallet     PaymentMode = "Wallet"
	OtherMode  PaymentMode = "Other"
)

// CustomProduct is the product choice that switches the form to free text.
const CustomProduct = "Other"

// Catalog order is the display order of the form.
var categories = []Category{
	Food, Groceries, Transport, Shopping, ClothesAccessories, ElectronicsGadgets,
	Utilities, HealthFitness, Gaming, Entertainment, Education, GiftsDonations,
	TravelTrips, HousingRent, SavingsInvestments, Insurance, EMILoans, Pets,
	OtherCategory,
}

var paymentModes = []PaymentMode{UPI, CreditCard, DebitCard, Cash, Wallet, OtherMode}

var suggestedProducts = map[Category][]string{
	Food:               {"Subway Lunch", "Pizza", "Burger", "Coffee", "Snacks", "Grocery Meal"},
	Groceries:          {"Rice", "Vegetables", "Fruits", "Milk", "Eggs", "Toiletries"},
	Transport:          {"Petrol", "Diesel", "Bus Ticket", "Train Ticket", "Taxi Ride", "Bike Service"},
	Shopping:           {"Clothes", "Shoes", "Watch", "Bag", "Perfume"},
	ClothesAccessories: {"T-Shirt", "Jeans", "Shoes", "Cap", "Belt", "Wallet"},
	ElectronicsGadgets: {"Mobile", "Laptop", "Headphones", "Charger", "Power Bank"},
	Utilities:          {"Electricity Bill", "Water Bill", "Gas Bill", "Internet Recharge", "DTH"},
	HealthFitness:      {"Gym Membership", "Doctor Visit", "Medicine", "Protein Supplement"},
	Gaming:             {"Game Top-Up", "Battle Pass", "Skin Purchase"},
	Entertainment:      {"Movie Ticket", "OTT Subscription", "Concert Ticket"},
	Education:          {"Books", "Course", "Exam Fees", "Stationery"},
	GiftsDonations:     {"Birthday Gift", "Wedding Gift", "Donation"},
	TravelTrips:        {"Flight Ticket", "Hotel Stay", "Food on Trip", "Cab on Trip"},
	HousingRent:        {"Rent", "Maintenance", "Furniture", "Cleaning Service"},
	SavingsInvestments: {"FD", "Mutual Fund", "Stocks", "Gold Purchase"},
	Insurance:          {"Health Insurance", "Car Insurance", "Life Insurance"},
	EMILoans:           {"Car EMI", "Home EMI", "Personal Loan EMI"},
	Pets:               {"Pet Food", "Vet Visit", "Toys", "Accessories"},
	OtherCategory:      {"Miscellaneous"},
}

var gameCurrencies = []string{
	"UC (BGMI)", "Diamonds (Free Fire)", "CP (COD Mobile)",
	"Gems (Clash of Clans)", "V-Bucks (Fortnite)", "Valorant Points",
	"Robux (Roblox)", "Other Game Currency",
}

var categoryIndex = func() map[Category]int {
	m := make(map[Category]int, len(categories))
	for i, c := range categories {
		m[c] = i
	}
	return m
}()

// Categories returns the category catalog in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// PaymentModes returns the payment catalog in display order.
func PaymentModes() []PaymentMode {
	return append([]PaymentMode(nil), paymentModes...)
}

// SuggestedProducts returns the product suggestions for c. Unknown
// categories have none.
func SuggestedProducts(c Category) []string {
	return append([]string(nil), suggestedProducts[c]...)
}

// GameCurrencies returns the game currency suggestions.
func GameCurrencies() []string {
	return append([]string(nil), gameCurrencies...)
}

// CategoryOrder is the catalog position of c, or -1.
func CategoryOrder(c Category) int {
	if i, ok := categoryIndex[c]; ok {
		return i
	}
	return -1
}
