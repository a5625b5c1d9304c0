package sqlinline

const QInsertDonation = `--sql 8c1e2f5a-4b3d-4c9e-a017-6f8d2b4e9c31
insert into donations(id, campaign_id, user_id, amount, message, method, anonymous, donor_country, reference, status, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, nullif($2::text, '')::uuid, $3::bigint, $4::text, $5::text, $6::boolean, $7::text, $8::text, 'pending', now(), now())
returning id, created_at;
`

const QGetDonationByID = `--sql 5d9b0c72-e816-47a4-b3c5-0a12f9e8d764
select id, campaign_id, user_id, amount, message, method, anonymous, donor_country, reference, status, created_at, updated_at
from donations
where id = $1::uuid;
`

const QGetDonationByReference = `--sql 2a6f8e41-7c05-4d92-bb38-9e1c5d0a7f23
select id, campaign_id, user_id, amount, message, method, anonymous, donor_country, reference, status, created_at, updated_at
from donations
where reference = $1::text;
`

// QConfirmDonation settles a pending donation and bumps the campaign
// aggregate and the daily counters in one statement so the campaign amount
// can never be applied twice for the same donation.
const QConfirmDonation = `--sql 914d3b8f-0a27-46c1-8e5d-73f2c6a1b9e0
with settled as (
    update donations
    set status = 'confirmed', updated_at = now()
    where id = $1::uuid and status = 'pending'
    returning id, campaign_id, amount
), bumped as (
    update campaigns c
    set current_amount = c.current_amount + s.amount,
        donation_count = c.donation_count + 1,
        updated_at = now()
    from settled s
    where c.id = s.campaign_id
    returning c.id
), counted as (
    insert into daily_stats(day, donations, amount)
    select current_date, 1, s.amount from settled s
    on conflict (day) do update
    set donations = daily_stats.donations + 1,
        amount = daily_stats.amount + excluded.amount
    returning day
)
select count(*) from settled;
`

const QMarkDonationFailed = `--sql c4e7a2d9-5f18-4b60-93ac-e8d01b6f4725
update donations
set status = 'failed', updated_at = now()
where id = $1::uuid and status = 'pending';
`

const QListCampaignDonations = `--sql 6b0d9f35-28a4-41ce-97b2-f5e3a8c0d146
select id, campaign_id, user_id, amount, message, method, anonymous, donor_country, reference, status, created_at, updated_at
from donations
where campaign_id = $1::uuid and status = 'confirmed'
order by created_at desc
limit $2::int;
`
