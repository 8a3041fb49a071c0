package food

// SeedItems es la tabla de referencia inicial. Los adaptadores de
// almacenamiento la cargan al arrancar si la tabla está vacía.
var SeedItems = []FoodItem{
	{Name: "Chocolate", Safety: SafetyToxic,
		Description:  "Contiene teobromina; los perros la metabolizan muy lento. El chocolate oscuro es el peor.",
		Symptoms:     "Vómito, diarrea, taquicardia, temblores, convulsiones.",
		Alternatives: "Golosinas de algarroba (carob)."},
	{Name: "Grapes", Safety: SafetyToxic,
		Description:  "Uvas y pasas causan fallo renal agudo incluso en cantidades pequeñas.",
		Symptoms:     "Vómito, letargo, falta de apetito, fallo renal.",
		Alternatives: "Arándanos, rodajas de manzana sin semillas."},
	{Name: "Raisins", Safety: SafetyToxic,
		Description:  "Igual que las uvas: fallo renal agudo.",
		Symptoms:     "Vómito, letargo, fallo renal.",
		Alternatives: "Arándanos."},
	{Name: "Onion", Safety: SafetyToxic,
		Description:  "Daña los glóbulos rojos (anemia hemolítica). Aplica crudo, cocido y en polvo.",
		Symptoms:     "Debilidad, encías pálidas, orina oscura.",
		Alternatives: "Zanahoria rallada."},
	{Name: "Garlic", Safety: SafetyToxic,
		Description:  "Más potente que la cebolla por gramo; la exposición acumulada también cuenta.",
		Symptoms:     "Anemia, letargo, encías pálidas.",
		Alternatives: ""},
	{Name: "Xylitol", Safety: SafetyDangerous,
		Description:  "Edulcorante en chicles y mantequilla de maní \"sin azúcar\". Provoca hipoglucemia brusca y fallo hepático.",
		Symptoms:     "Vómito, descoordinación, convulsiones, colapso.",
		Alternatives: "Mantequilla de maní sin xilitol."},
	{Name: "Macadamia nuts", Safety: SafetyToxic,
		Description:  "Mecanismo desconocido; afecta el sistema nervioso.",
		Symptoms:     "Debilidad en patas traseras, temblores, fiebre.",
		Alternatives: ""},
	{Name: "Avocado", Safety: SafetyDangerous,
		Description:  "La persina de la piel y el hueso es problemática; la pulpa en cantidad también cae mal.",
		Symptoms:     "Vómito, diarrea; el hueso es riesgo de obstrucción.",
		Alternatives: "Calabaza cocida."},
	{Name: "Alcohol", Safety: SafetyDangerous,
		Description:  "Los perros son mucho más sensibles al etanol que las personas.",
		Symptoms:     "Descoordinación, depresión respiratoria, coma.",
		Alternatives: ""},
	{Name: "Coffee", Safety: SafetyDangerous,
		Description:  "La cafeína es un estimulante peligroso para perros; incluye posos y cápsulas.",
		Symptoms:     "Hiperactividad, taquicardia, temblores.",
		Alternatives: ""},
	{Name: "Cooked bones", Safety: SafetyDangerous,
		Description:  "Los huesos cocidos se astillan y perforan el tracto digestivo.",
		Symptoms:     "Asfixia, vómito, dolor abdominal.",
		Alternatives: "Huesos crudos recreativos bajo supervisión, o juguetes de morder."},
	{Name: "Cheese", Safety: SafetyModeration,
		Description:  "Bien tolerado en trozos pequeños salvo intolerancia a la lactosa. Alto en grasa.",
		Symptoms:     "Diarrea si hay intolerancia; pancreatitis con exceso crónico.",
		Alternatives: "Queso fresco bajo en grasa."},
	{Name: "Peanut butter", Safety: SafetyModeration,
		Description:  "Buen premio si no contiene xilitol. Revisar siempre la etiqueta.",
		Symptoms:     "",
		Alternatives: ""},
	{Name: "Bread", Safety: SafetyModeration,
		Description:  "El pan horneado simple no hace daño; la masa cruda con levadura sí es peligrosa.",
		Symptoms:     "La masa cruda fermenta en el estómago: hinchazón y etanol.",
		Alternatives: ""},
	{Name: "Egg", Safety: SafetySafe,
		Description:  "Cocido es una proteína excelente. Evitar crudo por salmonela y avidina.",
		Symptoms:     "",
		Alternatives: ""},
	{Name: "Chicken", Safety: SafetySafe,
		Description:  "Cocido y sin hueso es base de muchas dietas. Sin condimentar.",
		Symptoms:     "",
		Alternatives: ""},
	{Name: "Carrot", Safety: SafetySafe,
		Description:  "Cruda o cocida; baja en calorías y buena para los dientes.",
		Symptoms:     "",
		Alternatives: ""},
	{Name: "Apple", Safety: SafetyModeration,
		Description:  "La pulpa es segura; retirar semillas (cianuro) y corazón.",
		Symptoms:     "",
		Alternatives: ""},
	{Name: "Blueberries", Safety: SafetySafe,
		Description:  "Antioxidantes; premio bajo en calorías.",
		Symptoms:     "",
		Alternatives: ""},
	{Name: "Pumpkin", Safety: SafetySafe,
		Description:  "Cocida y sin especias ayuda a la digestión. No usar relleno de pie de calabaza.",
		Symptoms:     "",
		Alternatives: ""},
	{Name: "Mushrooms", Safety: SafetyVaries,
		Description:  "Los de tienda son inofensivos; los silvestres pueden ser letales. Ante la duda, no.",
		Symptoms:     "Según la especie: desde malestar digestivo hasta fallo hepático.",
		Alternatives: "Champiñón de tienda cocido, simple."},
	{Name: "Tomato", Safety: SafetyVaries,
		Description:  "El fruto maduro es seguro; planta y fruto verde contienen solanina.",
		Symptoms:     "Malestar digestivo, letargo con las partes verdes.",
		Alternatives: ""},
}
