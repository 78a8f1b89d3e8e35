package phrase

import "github.com/cognicore/lexitag/pkg/lexitag/tag"

// NewDefaultMerger returns a merger preloaded with common e-commerce fixed
// phrases in English, German, French and Spanish.
func NewDefaultMerger() *Merger {
	m := NewMerger()
	for _, group := range defaultPhrases {
		for _, p := range group.phrases {
			m.AddString(p, group.tag, group.confidence)
		}
	}
	return m
}

type phraseGroup struct {
	tag        string
	confidence float64
	phrases    []string
}

var defaultPhrases = []phraseGroup{
	{tag.Product, 0.95, []string{
		// paper and stationery
		"card stock", "sticky notes", "index cards", "flash cards",
		"business cards", "greeting cards", "note cards",
		// bags
		"duffle bag", "duffel bag", "tote bag", "messenger bag",
		"laptop bag", "gym bag", "travel bag", "shoulder bag",
		"crossbody bag", "fanny pack", "belt bag", "sling bag",
		// bedding and home
		"bed sheets", "sheet set", "pillow case", "pillow cases",
		"mattress topper", "mattress pad", "mattress protector",
		"comforter set", "duvet cover", "throw blanket", "throw pillow",
		// automotive
		"roof sunshade", "sun shade", "car cover", "seat cover",
		"seat covers", "floor mats", "floor mat", "steering wheel cover",
		"phone holder", "phone mount", "dash cam", "dash camera",
		// electronics
		"power bank", "charging cable", "usb cable", "mouse pad",
		"keyboard cover", "screen protector", "phone case",
		"tablet stand", "laptop stand", "monitor stand", "ring light",
		"led strip", "led lights", "fairy lights", "string lights",
		// sports gear
		"yoga mat", "yoga pants", "yoga block", "resistance bands",
		"resistance band", "jump rope", "exercise ball", "foam roller",
		"pull up bar", "ab roller",
		// kitchen
		"cutting board", "chopping board", "water bottle", "coffee mug",
		"travel mug", "lunch box", "lunch bag", "ice cube tray",
		"storage container", "storage containers", "food storage",
		// apparel
		"t shirt", "tank top", "polo shirt", "dress shirt",
		"button down shirt", "cargo pants", "cargo shorts",
		"sweat pants", "sweat shirt", "rain jacket", "rain coat",
		"puffer jacket", "bomber jacket", "denim jacket",
		"leather jacket", "sports bra", "running shoes",
		"hiking boots", "ankle boots", "snow boots", "rain boots",
		"knee high boots", "flip flops",
		// German
		"lauf schuhe", "sport schuhe", "regen jacke",
		"schlaf anzug", "bade anzug",
		// French
		"sac à dos", "sac de voyage", "sac à main",
		"chaussures de course", "tapis de yoga",
		// Spanish
		"bolsa de viaje", "mochila escolar", "funda de almohada",
		"alfombrilla de ratón", "cargador inalámbrico",
	}},
	{tag.Attribute, 0.9, []string{
		// sleeves, waist, fit
		"long sleeve", "short sleeve", "cap sleeve", "3/4 sleeve",
		"high waist", "low waist", "mid waist",
		"high rise", "low rise", "mid rise",
		"slim fit", "loose fit", "regular fit", "relaxed fit",
		"oversized fit",
		"v neck", "crew neck", "round neck", "scoop neck",
		"mock neck", "turtle neck",
		"zip up", "button down", "pull on",
		"wide leg", "straight leg", "skinny leg",
		"full length", "knee length", "ankle length",
		// materials
		"stainless steel", "memory foam", "faux leather",
		"genuine leather", "real leather", "pu leather",
		"vegan leather", "cotton blend", "bamboo fiber",
		"fleece lined", "sherpa lined", "fur lined",
		// tech
		"open ear", "bone conduction", "true wireless",
		"touch screen", "dual layer", "double layer", "single layer",
		// German
		"mit kapuze", "mit taschen", "mit reißverschluss",
		"hohe taille", "hoher bund", "lange ärmel", "kurze ärmel",
		"ohne ärmel",
		// French
		"taille haute", "taille basse", "manches longues",
		"manches courtes", "sans manches", "sous lit", "à roulettes",
		// Spanish
		"manga larga", "manga corta", "sin mangas",
		"cintura alta", "cintura baja",
	}},
	{tag.Feature, 0.9, []string{
		"quick dry", "fast dry", "quick drying",
		"water resistant", "water proof", "wind proof",
		"light weight", "ultra light",
		"noise cancelling", "noise canceling",
		"sweat proof", "sweat resistant",
		"anti slip", "non slip", "anti skid",
		"uv protection", "sun protection", "spf protection",
		"wrinkle free", "stain resistant", "odor resistant",
		"scratch resistant", "shock proof", "drop proof", "dust proof",
		"machine washable", "easy clean", "easy to clean",
		"heavy duty", "long lasting", "fast charging", "quick charge",
		"schnell trocknend",
	}},
	{tag.Size, 0.9, []string{
		"king size", "queen size", "full size", "twin size",
		"extra large", "extra small", "plus size", "one size",
		"talla grande",
	}},
	{tag.Scenario, 0.85, []string{
		"work out", "work from home", "outdoor sports",
		"outdoor activities", "road trip", "beach vacation",
		"back to school", "daily use", "everyday use",
	}},
	{tag.Audience, 0.9, []string{
		"big and tall", "petite women", "plus size women",
		"young adults", "teen girls", "teen boys",
		"little girls", "little boys",
		"pour femme", "pour homme", "pour enfant",
		"para mujer", "para hombre", "para niños",
	}},
}
