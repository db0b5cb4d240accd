package i18n

import "fmt"

type Key int

const (
	StatusPending Key = iota
	StatusProcessing
	StatusShipped
	StatusDelivered
	StatusCancelled

	PaymentCCP
	PaymentCOD

	DeliveryHome
	DeliveryOffice
	DeliveryPickup

	CategoryElectronics
	CategoryFashion
	CategoryGaming

	ErrCustomerInfoRequired
	ErrPaymentProofRequired
	ErrPaymentMethodRequired
	ErrCartEmpty
	ErrSubmissionFailed
	ErrInvalidCredentials
	ErrInvalidTransition

	OrderPlaced
	Processing

	numKeys
)

var keyNames = [numKeys]string{
	StatusPending:    "order.status.pending",
	StatusProcessing: "order.status.processing",
	StatusShipped:    "order.status.shipped",
	StatusDelivered:  "order.status.delivered",
	StatusCancelled:  "order.status.cancelled",

	PaymentCCP: "checkout.paymentCCP",
	PaymentCOD: "checkout.paymentCOD",

	DeliveryHome:   "checkout.deliveryHome",
	DeliveryOffice: "checkout.deliveryOffice",
	DeliveryPickup: "checkout.deliveryPickup",

	CategoryElectronics: "category.electronics",
	CategoryFashion:     "category.fashion",
	CategoryGaming:      "category.gaming",

	ErrCustomerInfoRequired:  "checkout.error.customerInfo",
	ErrPaymentProofRequired:  "checkout.error.paymentProof",
	ErrPaymentMethodRequired: "checkout.error.paymentMethod",
	ErrCartEmpty:             "checkout.error.cartEmpty",
	ErrSubmissionFailed:      "checkout.error.submission",
	ErrInvalidCredentials:    "admin.error.credentials",
	ErrInvalidTransition:     "admin.error.transition",

	OrderPlaced: "checkout.orderPlaced",
	Processing:  "checkout.processing",
}

var messages = [numKeys]Text{
	StatusPending:    {"قيد الانتظار", "En attente", "Pending"},
	StatusProcessing: {"قيد المعالجة", "En cours de traitement", "Processing"},
	StatusShipped:    {"تم الشحن", "Expédiée", "Shipped"},
	StatusDelivered:  {"تم التوصيل", "Livrée", "Delivered"},
	StatusCancelled:  {"ملغاة", "Annulée", "Cancelled"},

	PaymentCCP: {"الدفع عبر CCP", "Paiement CCP", "CCP Payment"},
	PaymentCOD: {"الدفع عند الاستلام", "Paiement à la livraison", "Cash on Delivery"},

	DeliveryHome:   {"توصيل إلى المنزل", "Livraison à domicile", "Home Delivery"},
	DeliveryOffice: {"توصيل إلى المكتب", "Livraison au bureau", "Office Delivery"},
	DeliveryPickup: {"نقطة الاستلام", "Point de retrait", "Pickup Point"},

	CategoryElectronics: {"إلكترونيات", "Électronique", "Electronics"},
	CategoryFashion:     {"أزياء", "Mode", "Fashion"},
	CategoryGaming:      {"ألعاب", "Gaming", "Gaming"},

	ErrCustomerInfoRequired:  {"يرجى ملء جميع بيانات العميل", "Veuillez remplir toutes les informations client", "Please fill in all customer information"},
	ErrPaymentProofRequired:  {"يرجى رفع إثبات الدفع", "Veuillez télécharger la preuve de paiement", "Please upload the payment proof"},
	ErrPaymentMethodRequired: {"يرجى اختيار طريقة الدفع", "Veuillez choisir un mode de paiement", "Please choose a payment method"},
	ErrCartEmpty:             {"السلة فارغة", "Le panier est vide", "Your cart is empty"},
	ErrSubmissionFailed:      {"تعذر إرسال الطلب، حاول مرة أخرى", "Impossible d'envoyer la commande, réessayez", "Could not submit the order, please retry"},
	ErrInvalidCredentials:    {"بيانات الدخول غير صحيحة", "Identifiants incorrects", "Invalid credentials"},
	ErrInvalidTransition:     {"لا يمكن تغيير حالة الطلب", "Changement de statut impossible", "This status change is not allowed"},

	OrderPlaced: {"تم تأكيد طلبك", "Votre commande est confirmée", "Your order has been placed"},
	Processing:  {"جاري المعالجة...", "Traitement en cours...", "Processing..."},
}

func (k Key) String() string {
	if k < 0 || k >= numKeys || keyNames[k] == "" {
		return fmt.Sprintf("i18n.Key(%d)", int(k))
	}
	return keyNames[k]
}

// T returns the message for k in l. An unknown or incomplete entry yields the key name.
func T(l Lang, k Key) string {
	if k < 0 || k >= numKeys || !messages[k].Complete() {
		return k.String()
	}
	return messages[k].Get(l)
}

// Lookup returns all translations of k.
func Lookup(k Key) (Text, bool) {
	if k < 0 || k >= numKeys || !messages[k].Complete() {
		return Text{}, false
	}
	return messages[k], true
}

var categoryKeys = map[string]Key{
	"electronics": CategoryElectronics,
	"fashion":     CategoryFashion,
	"gaming":      CategoryGaming,
}

// CategoryName localizes a known category tag; free-form tags are returned as is.
func CategoryName(tag string) Text {
	if k, ok := categoryKeys[tag]; ok {
		if t, ok := Lookup(k); ok {
			return t
		}
	}
	return Text{tag, tag, tag}
}

// Validate checks that every key has a name and a complete translation.
func Validate() error {
	seen := make(map[string]Key, numKeys)
	for k := Key(0); k < numKeys; k++ {
		name := keyNames[k]
		if name == "" {
			return fmt.Errorf("i18n: key %d has no name", int(k))
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("i18n: name %q used by keys %d and %d", name, int(prev), int(k))
		}
		seen[name] = k
		if !messages[k].Complete() {
			return fmt.Errorf("i18n: %s is missing a translation", name)
		}
	}
	return nil
}
