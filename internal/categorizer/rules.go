package categorizer

// Category labels. Income and Other Expense are shared with the models package.
const (
	TransferOut    = "Transfer Out"
	Healthcare     = "Healthcare"
	Groceries      = "Groceries"
	FoodDining     = "Food & Dining"
	Shopping       = "Shopping"
	Travel         = "Travel"
	Fuel           = "Fuel"
	Education      = "Education"
	Entertainment  = "Entertainment"
	Utilities      = "Utilities"
	Banking        = "Banking & Finance"
	Recharge       = "Recharge"
	PersonalCare   = "Personal Care"
	HomeKitchen    = "Home & Kitchen"
	GiftsDonations = "Gifts & Donations"
	Business       = "Business Expenses"
	Hobbies        = "Hobbies & Leisure"
	Vehicle        = "Vehicle Maintenance"
	ChildFamily    = "Child & Family"
	Technology     = "Technology & Software"
)

// Keywords are matched against the lower-cased description padded with a
// space on each side, so a keyword written as " ola " only matches the
// whole word.
var (
	telecomNames = []string{
		"airtel", "jio", " vi ", "vodafone", " idea ", "bsnl", "mtnl",
	}

	rechargeIntent = []string{
		"recharge", "top-up", "topup", " top up", "prepaid", "talktime",
		"data pack", "data plan", "validity",
	}

	broadbandWords = []string{
		"fiber", "fibre", "broadband", "xstream", "airfiber",
	}

	storeWords = []string{
		"store", "center", "centre", "outlet", "shop", "gallery",
	}
)

// DefaultRules is the ordered rule table. Earlier rules win, so the more
// specific categories sit above the ones whose keywords overlap them.
var DefaultRules = []Rule{
	{Label: TransferOut, Any: []string{
		" paid to ", " sent to ", "transfer to", "paytm", "phonepe", " phone pe",
		"gpay", "google pay", "googlepay", "amazon pay", "amazonpay",
		"mobikwik", "freecharge", " bhim", "cred club",
	}},
	{Label: Healthcare, Any: []string{
		"hospital", "pharmacy", "pharma", "medical", "medicine", "medicos",
		"clinic", "doctor", "diagnostic", "pathology", " lab ", "labs",
		"apollo", "medplus", "netmeds", "pharmeasy", "1mg", "chemist",
		"dental", "dentist", "nursing home", "healthcare", "health care",
		"practo", "optical", "eye care",
	}},
	{Label: Groceries, Any: []string{
		"dmart", "d-mart", " d mart", "bigbasket", "big basket", "zepto",
		"instamart", "blinkit", "grofers", "jiomart", "reliance fresh",
		"reliance smart", "more retail", "more supermarket", "spencer",
		"nature's basket", "natures basket", "supermarket", "hypermarket",
		"grocery", "groceries", "kirana", "provision", "vegetable", "sabzi",
		"fruits", "dairy", " milk", "milkbasket", "country delight",
	}},
	{Label: FoodDining, Any: []string{
		"zomato", "swiggy", "pizza", "restaurant", "hotel", "cafe", "café",
		"coffee", "domino", "mcdonald", "kfc", "burger", "subway",
		"starbucks", "chaayos", " chai", " tea ", "bakery", "bakers",
		"sweets", "dhaba", "biryani", "haldiram", "eatery", "canteen",
		"food", "dining", "bar & grill", "juice",
	}},
	{Label: Shopping, Any: []string{
		"amazon", "flipkart", "myntra", "ajio", "meesho", "nykaa",
		"snapdeal", "tata cliq", "tatacliq", "shoppers stop", "lifestyle",
		"pantaloons", "westside", "trends", "max fashion", "zudio",
		"decathlon", "croma", "reliance digital", "vijay sales", " mall",
		"bazaar", "retail", "lenskart",
	}},
	{Label: Travel, Any: []string{
		"uber", " ola ", "olacabs", "ola cabs", "rapido", "irctc", "redbus",
		"makemytrip", "make my trip", "goibibo", "yatra", "cleartrip",
		"ixigo", "indigo", "air india", "airindia", "vistara", "spicejet",
		"akasa", "airways", "airline", "airport", "metro", "railway",
		" rail ", " bus ", " cab ", "taxi", "fastag", "toll", "travels",
		"tours", " oyo", "airbnb", "emirates",
	}},
	{Label: Fuel, Any: []string{
		"petrol", "diesel", "fuel", "hpcl", "bpcl", "iocl", " ioc ",
		"indian oil", "indianoil", "bharat petroleum", "hindustan petroleum",
		"petroleum", "nayara", "shell", " cng ", "filling station",
		"service station",
	}},
	{Label: Education, Any: []string{
		"school", "college", "university", "tuition", "coaching", "academy",
		"institute", "udemy", "coursera", "byju", "unacademy", "vedantu",
		"upgrad", "simplilearn", "exam fee", "admission", "course",
		"classes", "education",
	}},
	{Label: Entertainment, Any: []string{
		"netflix", "prime", "hotstar", "disney", "sonyliv", "sony liv",
		"zee5", "spotify", "gaana", "jiosaavn", "wynk", "youtube",
		"bookmyshow", "book my show", "pvr", "inox", "cinepolis", "cinema",
		"movie", "theatre", "theater", "concert", "amusement", "wonderla",
	}},
	// A telecom brand sold as a home connection is a utility bill, not a
	// mobile recharge.
	{Label: Utilities, AllOf: [][]string{telecomNames, broadbandWords}},
	{Label: Utilities, Any: []string{
		"electricity", "water", " gas ", "gas agency",
		"bill", "bescom", "tneb", "tangedco", "msedcl", "mahadiscom",
		"tata power", "adani electricity", "bses", "torrent power", "cesc",
		"lpg", "indane", "hp gas", "bharat gas", "broadband", "wifi",
		"wi-fi", "internet", " dth", "tata sky", "tata play", "dish tv",
		"sun direct", "d2h", "municipal", "property tax", "postpaid",
	}},
	{Label: Banking, Any: []string{
		" emi", "emi ", "loan", "insurance", " lic ", "lic of india", " sip",
		"mutual fund", "credit card", "card payment", " cc payment",
		"interest", "bank charges", " charges", "zerodha", "groww",
		"upstox", "policy", "premium", "investment", " nach", "bajaj finance",
		"bajaj finserv", "hdfc life", "icici pru", "sbi life", " nps ",
		"fixed deposit", "recurring deposit",
	}},
	{Label: Recharge, AllOf: [][]string{telecomNames, rechargeIntent}},
	{Label: PersonalCare, Any: []string{
		"salon", " spa ", "parlour", "parlor", "barber", "haircut",
		"grooming", "cosmetic", "beauty", "lakme", "urban company",
		"urbanclap", " gym", "fitness", "cult.fit", "cultfit", "wellness",
		"makeup",
	}},
	{Label: HomeKitchen, Any: []string{
		"furniture", "ikea", "pepperfry", "urban ladder", "home centre",
		"homecentre", "home decor", "decor", "kitchen", "appliance",
		"hardware", "sanitary", "paints", "asian paints", "utensil",
		"plumber", "electrician", "carpenter", "laundry", "dry clean",
		" rent ", "house rent", "mattress", "wakefit",
	}},
	{Label: GiftsDonations, Any: []string{
		"gift", "donation", "donate", "charity", "temple", "church",
		"mosque", "gurudwara", "trust", " ngo", "ferns n petals", " fnp",
		"archies", "pooja", " puja", "offering",
	}},
	{Label: Business, Any: []string{
		"office", "stationery", "stationary", "courier", "printing",
		"xerox", " gst", "vendor", "supplier", "invoice", "wholesale",
		"coworking", "co-working", "business", "enterprises", "traders",
		"consultancy", "professional fee", "legal", "delhivery",
		"bluedart", "dtdc",
	}},
	{Label: Hobbies, Any: []string{
		"books", "bookstore", "book store", "crossword", "music", "guitar",
		" sports", " sport ", "gaming", " game", "steam", "playstation",
		"xbox", " art supplies", "craft", "photography", "camera", " club",
		"golf", "swimming", "trek", "adventure", "hobby",
	}},
	{Label: Vehicle, Any: []string{
		" car wash", "tyre", " tire", "garage", "mechanic", "workshop",
		"spare parts", "spares", "automobile", "auto parts", "bike service",
		" car service", "two wheeler", "puncture", "motors", "servicing",
		"pollution check", " puc ",
	}},
	{Label: ChildFamily, Any: []string{
		"toys", " toy ", "kids", "children", " child", "baby", "firstcry",
		"hamleys", "daycare", " day care", "creche", "playschool",
		"play school",
	}},
	{Label: Technology, Any: []string{
		"software", "subscription", "saas", "google", "microsoft", "apple",
		"adobe", "github", " aws", "amazon web services", "azure",
		"digitalocean", "hosting", "domain", "godaddy", "hostinger",
		"cloud", "icloud", "openai", "chatgpt", "zoom", "dropbox",
		" notion", "canva", " app store", "play store",
	}},
}

// StoreRules dispatch descriptions that mention "store" but matched no
// primary rule. Anything left over is Shopping.
var StoreRules = []Rule{
	{Label: Healthcare, Any: []string{"medical", "pharma"}},
	{Label: Groceries, Any: []string{"general", "kirana", "provision"}},
	{Label: Hobbies, Any: []string{"book"}},
	{Label: GiftsDonations, Any: []string{"gift"}},
	{Label: ChildFamily, Any: []string{"toy", "kids", "children"}},
	{Label: Shopping, Any: []string{"electronic", "computer", "mobile"}},
	{Label: HomeKitchen, Any: []string{"furniture", "home"}},
	{Label: Shopping, Any: []string{"clothing", "fashion", "garment"}},
}
